package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/khanhdv/llm-cli/internal/constants"
)

func TestNewWebSearchTool_Identity(t *testing.T) {
	tool := NewWebSearchTool(NewSearchClient(SearchOptions{Token: "t"}))
	if tool.Name != constants.WebSearchToolName {
		t.Errorf("Name = %q, want %q", tool.Name, constants.WebSearchToolName)
	}
	if tool.Description != constants.WebSearchToolDescription {
		t.Errorf("Description = %q, want %q", tool.Description, constants.WebSearchToolDescription)
	}
}

func TestWebSearchTool_Run(t *testing.T) {
	const payload = `{"organic":[{"title":"result"}]}`
	client := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}, SearchOptions{Token: "t"})

	tool := NewWebSearchTool(client)
	out := tool.Run(context.Background(), "go 1.24")

	if !strings.Contains(out, `"go 1.24"`) {
		t.Errorf("Run() = %q, want the query named in the header", out)
	}
	if !strings.Contains(out, payload) {
		t.Errorf("Run() = %q, want the snippet in the body", out)
	}
}

func TestWebSearchTool_RunNoResults(t *testing.T) {
	client := newTestSearchClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusUnauthorized)
	}, SearchOptions{Token: "bad"})

	tool := NewWebSearchTool(client)
	out := tool.Run(context.Background(), "anything")

	if out != constants.WebSearchNoResults {
		t.Errorf("Run() = %q, want %q", out, constants.WebSearchNoResults)
	}
}
