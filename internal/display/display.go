// Package display owns all terminal output: markdown rendering, status
// colors, and the progress spinner shown while the backend is working.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
	ansiReset  = "\033[0m"
)

var renderer *glamour.TermRenderer

// InitRenderer prepares the markdown renderer. Call it once before
// ShowContentRendered; when initialization fails or is skipped, rendered
// output degrades to plain text.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// ShowContent prints content verbatim.
func ShowContent(content string) {
	fmt.Println(content)
}

// ShowContentRendered prints content as terminal markdown when the renderer
// is ready, plain otherwise.
func ShowContentRendered(content string) {
	if renderer == nil {
		ShowContent(content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Print(out)
}

// ShowError prints msg to stderr with an error marker.
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "%sError:%s %s\n", ansiRed, ansiReset, msg)
}

// ShowWarning prints msg to stderr with a warning marker.
func ShowWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%sWarning:%s %s\n", ansiYellow, ansiReset, msg)
}

// Citation is a source reference shown after a web-augmented answer.
type Citation struct {
	Title string
	URL   string
}

// ShowCitations prints the source list, numbered in the order the sources
// were fed to the model. A nil or empty list prints nothing.
func ShowCitations(citations []Citation) {
	if len(citations) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Sources:")
	for i, c := range citations {
		fmt.Printf("  [%d] %s\n      %s%s%s\n", i+1, c.Title, ansiDim, c.URL, ansiReset)
	}
}
