package config

import (
	"errors"
	"os"
	"strings"

	"github.com/khanhdv/llm-cli/internal/constants"
)

// Environment variable names
const (
	// Inference settings
	EnvEndpoint = "LLM_ENDPOINT"
	EnvModel    = "LLM_MODEL"

	// Web search settings
	EnvSearchToken = "BRIGHTDATA_API_TOKEN"
	EnvSearchZone  = "BRIGHTDATA_ZONE"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultEndpoint      = constants.DefaultEndpoint
	DefaultModel         = constants.DefaultModel
	DefaultSystemMessage = constants.DefaultSystemMessage
	DefaultSearchZone    = constants.DefaultSearchZone
)

// Errors
var (
	ErrSearchTokenNotFound = errors.New("Bright Data API token not found. Set BRIGHTDATA_API_TOKEN or web_search.token in the config file to use --web")
	ErrEmptyEndpoint       = errors.New("endpoint must not be blank. Set LLM_ENDPOINT or use --endpoint")
)

// Config holds the application configuration
type Config struct {
	// Inference settings
	Endpoint string
	Model    string

	// Web search credentials
	SearchToken string
	SearchZone  string

	// Flags
	Render      bool
	WebSearch   bool
	Interactive bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate fills the configuration from its sources and checks it.
// Precedence: CLI flags (already set on c) > environment > config file > defaults.
func (c *Config) Validate() error {
	// Environment fills anything the flags left empty
	c.applyEnv()

	// Config file is the lowest-priority source before defaults
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}
	// Errors loading the config file are silently ignored - env vars and flags win

	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return ErrEmptyEndpoint
	}

	if c.Model == "" {
		c.Model = DefaultModel
	}

	if c.SearchZone == "" {
		c.SearchZone = DefaultSearchZone
	}

	// Fail fast when web search was requested without credentials. The
	// search client itself degrades to empty results on any failure, but a
	// missing token is diagnosable before the first query.
	if c.WebSearch && c.SearchToken == "" {
		return ErrSearchTokenNotFound
	}

	return nil
}

// applyEnv fills empty fields from environment variables
func (c *Config) applyEnv() {
	if c.Endpoint == "" {
		c.Endpoint = strings.TrimSpace(os.Getenv(EnvEndpoint))
	}
	if c.Model == "" {
		c.Model = strings.TrimSpace(os.Getenv(EnvModel))
	}
	if c.SearchToken == "" {
		c.SearchToken = strings.TrimSpace(os.Getenv(EnvSearchToken))
	}
	if c.SearchZone == "" {
		c.SearchZone = strings.TrimSpace(os.Getenv(EnvSearchZone))
	}
}
