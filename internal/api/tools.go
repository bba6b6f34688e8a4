package api

import (
	"context"
	"fmt"

	"github.com/khanhdv/llm-cli/internal/constants"
)

// Tool is the contract the invocation layer consumes: a capability name, a
// human-readable description, and a single string-in/string-out call. Run
// must not return an error; tools degrade to an explanatory string instead.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, input string) string
}

// NewWebSearchTool wraps a SearchClient as the web_search tool. Run performs
// no logic beyond delegating to SearchWeb and formatting the outcome: a
// fixed no-results message when the result set is empty, otherwise a header
// line naming the query followed by the snippet.
func NewWebSearchTool(client *SearchClient) Tool {
	return Tool{
		Name:        constants.WebSearchToolName,
		Description: constants.WebSearchToolDescription,
		Run: func(ctx context.Context, query string) string {
			results := client.SearchWeb(ctx, query, 1)
			if len(results) == 0 {
				return constants.WebSearchNoResults
			}
			return fmt.Sprintf("Web search results for %q:\n\n%s", query, results[0].Snippet)
		},
	}
}
