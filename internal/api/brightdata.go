package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/khanhdv/llm-cli/internal/constants"
	"github.com/khanhdv/llm-cli/internal/logging"
)

// SearchResult is one opaque web search record. Snippet may hold an entire
// serialized provider payload, capped at constants.MaxSnippetLength bytes.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SearchOptions configures a SearchClient.
type SearchOptions struct {
	// Token is the Bright Data API token, sent as a bearer credential.
	Token string

	// Zone is the Bright Data zone identifier. Empty means the package
	// default zone.
	Zone string

	// HTTPClient overrides the default client. The default carries no
	// timeout; scraping calls can legitimately take minutes, so the call is
	// bounded by ctx and the operating system alone.
	HTTPClient *http.Client

	// Logger receives the suppressed-failure diagnostics. Defaults to
	// logging.DefaultLogger.
	Logger *logging.Logger
}

// SearchClient runs web searches through the Bright Data scraping API.
// Failures never escape SearchWeb: the client logs them and returns an empty
// result set, so callers cannot distinguish an outage from a zero-result
// query and must treat both as "nothing found".
type SearchClient struct {
	token      string
	zone       string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewSearchClient creates a search client with fixed credentials.
func NewSearchClient(opts SearchOptions) *SearchClient {
	zone := opts.Zone
	if zone == "" {
		zone = constants.DefaultSearchZone
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.DefaultLogger
	}

	return &SearchClient{
		token:      opts.Token,
		zone:       zone,
		httpClient: httpClient,
		logger:     logger,
	}
}

// searchRequest is the Bright Data request body.
type searchRequest struct {
	Zone   string `json:"zone"`
	URL    string `json:"url"`
	Format string `json:"format"`
}

// SearchWeb runs one query through the scraping API and returns at most one
// result wrapping the raw provider payload. limit is accepted for call-site
// symmetry with richer providers but the result set is always 0 or 1
// records.
//
// SearchWeb never returns an error. Every failure is logged at warn level
// with enough context to diagnose (401 usually means a bad token, 403 a zone
// or permission problem) and yields an empty slice.
func (c *SearchClient) SearchWeb(ctx context.Context, query string, limit int) []SearchResult {
	_ = limit

	target := fmt.Sprintf(constants.SearchURLTemplate, url.QueryEscape(query))

	jsonData, err := json.Marshal(searchRequest{
		Zone:   c.zone,
		URL:    target,
		Format: "json",
	})
	if err != nil {
		c.logger.Warn("web search request marshal failed", logging.Fields{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, constants.BrightDataAPIURL+"?brd_json=1", bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Warn("web search request build failed", logging.Fields{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("web search transport failure", logging.Fields{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("web search response read failed", logging.Fields{
			"query": query,
			"error": err.Error(),
		})
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		fields := logging.Fields{
			"query":  query,
			"status": resp.StatusCode,
			"body":   truncateForLog(string(body)),
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			fields["hint"] = "check BRIGHTDATA_API_TOKEN"
		case http.StatusForbidden:
			fields["hint"] = "check the Bright Data zone name and its permissions"
		}
		c.logger.Warn("web search rejected by provider", fields)
		return nil
	}

	return []SearchResult{{
		Title:   constants.SearchResultTitle,
		URL:     constants.SearchResultURL,
		Snippet: truncateSnippet(string(body)),
	}}
}

// truncateSnippet caps s at MaxSnippetLength bytes. The cut is positional
// and may land inside a multi-byte rune; the snippet is treated as opaque
// text downstream, so a clipped final rune is acceptable.
func truncateSnippet(s string) string {
	if len(s) <= constants.MaxSnippetLength {
		return s
	}
	return s[:constants.MaxSnippetLength]
}

// maxLoggedBody keeps rejected-response bodies short in log output.
const maxLoggedBody = 500

func truncateForLog(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "... (truncated)"
}
