package cmd

import (
	"context"
	"fmt"

	"github.com/khanhdv/llm-cli/internal/api"
	"github.com/khanhdv/llm-cli/internal/constants"
	"github.com/khanhdv/llm-cli/internal/display"
)

// buildWebSearchMessage wraps the search context and the user's question
// into a single user turn.
func buildWebSearchMessage(searchContext, query string) string {
	return fmt.Sprintf(`%s

Using the search results above, answer the following question. If the
results do not contain the answer, say so instead of guessing.

Question: %s`, searchContext, query)
}

// showSearchCitations prints the search source when --citations is active
// and the search actually produced a payload.
func (app *App) showSearchCitations(searchContext string) {
	if !app.citations || searchContext == constants.WebSearchNoResults {
		return
	}
	display.ShowCitations([]display.Citation{{
		Title: constants.SearchResultTitle,
		URL:   constants.SearchResultURL,
	}})
}

// handleWebSearch is the interactive-mode variant of runWithWebSearch: it
// searches, appends the augmented turn to the running conversation, and
// prints the answer. On failure the turn is dropped so a retry starts clean.
// One spinner spans both phases; the web_search tool never fails, so an
// empty or failed search surfaces as its fixed no-results message inside the
// turn.
func (app *App) handleWebSearch(ctx context.Context, query string, messages *[]api.Message) {
	sp := display.NewSpinner("Searching the web...")
	sp.Start()
	searchContext := app.webSearch.Run(ctx, query)
	sp.UpdateMessage("Thinking...")

	*messages = append(*messages, api.Message{
		Role:    api.RoleUser,
		Content: buildWebSearchMessage(searchContext, query),
	})

	response, err := app.client.Chat(ctx, *messages)
	sp.Stop()
	if err != nil {
		display.ShowError(err.Error())
		*messages = (*messages)[:len(*messages)-1]
		return
	}

	fmt.Println()
	if app.cfg.Render {
		display.ShowContentRendered(response)
	} else {
		display.ShowContent(response)
	}
	app.showSearchCitations(searchContext)
	fmt.Println()

	*messages = append(*messages, api.Message{Role: api.RoleAssistant, Content: response})
}
