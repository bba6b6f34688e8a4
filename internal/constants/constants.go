// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the fixed deadline for inference requests
	DefaultAPITimeout = 60 * time.Second
)

// Inference defaults
const (
	// DefaultEndpoint is used when no endpoint is configured. Most local
	// inference servers (Ollama, LM Studio with the default port changed)
	// listen here out of the box.
	DefaultEndpoint = "http://localhost:11434"
	// DefaultModel is the fallback model identifier
	DefaultModel = "llama3.2"
	// DefaultSystemMessage seeds interactive conversations
	DefaultSystemMessage = "Be precise and concise."

	// DefaultTemperature and DefaultMaxTokens are the fixed sampling
	// parameters sent on every chat-completions request
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Web search defaults
const (
	// BrightDataAPIURL is the Bright Data request endpoint
	BrightDataAPIURL = "https://api.brightdata.com/request"
	// DefaultSearchZone is the zone identifier used when none is configured;
	// it matches the name Bright Data assigns to a fresh SERP zone
	DefaultSearchZone = "serp_api1"
	// SearchURLTemplate is the target search-engine URL; the query is
	// percent-encoded into the %s slot
	SearchURLTemplate = "https://www.google.com/search?q=%s"
	// MaxSnippetLength caps the raw payload stored in a search result.
	// Truncation is byte-based and may split a rune; downstream consumers
	// treat the snippet as opaque text.
	MaxSnippetLength = 5000

	// SearchResultTitle and SearchResultURL label the single result record
	// that wraps the raw provider payload
	SearchResultTitle = "Web search results"
	SearchResultURL   = "https://www.google.com/search"
)

// Tool adapter strings
const (
	WebSearchToolName        = "web_search"
	WebSearchToolDescription = "Search the web for current information. Input is a plain search query; output is a text block with the raw search payload."
	// WebSearchNoResults is returned by the tool when the search comes back empty
	WebSearchNoResults = "No search results found."
)
