package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"

	"github.com/khanhdv/llm-cli/internal/api"
	"github.com/khanhdv/llm-cli/internal/config"
	"github.com/khanhdv/llm-cli/internal/display"
	"github.com/khanhdv/llm-cli/internal/logging"
)

// InteractiveSession holds the state for an interactive chat session. The
// conversation lives in memory only; nothing is persisted between sessions.
type InteractiveSession struct {
	app            *App
	messages       []api.Message
	exitFlag       bool
	inputBuffer    []string // Buffer for multiline input
	conversationID string
}

// completer provides auto-completion suggestions for slash commands.
// It provides context-aware suggestions based on what the user is typing.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Only show suggestions when input starts with "/"
	if !strings.HasPrefix(text, "/") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	textLower := strings.ToLower(text)

	// /web <option> - suggest web options
	if strings.HasPrefix(textLower, "/web ") {
		suggestions := []prompt.Suggest{
			{Text: "on", Description: "Search the web for every message"},
			{Text: "off", Description: "Disable automatic web search"},
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	// /render <option> - suggest render options
	if strings.HasPrefix(textLower, "/render ") {
		suggestions := []prompt.Suggest{
			{Text: "on", Description: "Render answers as markdown"},
			{Text: "off", Description: "Print answers as plain text"},
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	// Main command suggestions
	suggestions := []prompt.Suggest{
		// Most used commands first
		{Text: "/model", Description: "Show/switch model (current: " + s.app.client.Model() + ")"},
		{Text: "/endpoint", Description: "Show/switch server (current: " + s.app.client.Endpoint() + ")"},
		{Text: "/clear", Description: "Clear conversation history"},
		{Text: "/web", Description: "Web search: /web <query>, /web on, /web off"},
		{Text: "/render", Description: "Toggle markdown rendering"},
		{Text: "/help", Description: "Show all available commands"},
		{Text: "/exit", Description: "Exit interactive mode"},

		// Aliases
		{Text: "/q", Description: "Exit (alias)"},
		{Text: "/c", Description: "Clear (alias)"},
		{Text: "/h", Description: "Help (alias)"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the interactive chat mode with a REPL interface.
// It handles user input until the session is terminated, with multiline
// input via backslash continuation and slash command auto-completion.
func (app *App) runInteractive() {
	fmt.Println("llm-cli - Interactive Mode")
	fmt.Printf("Server: %s\n", app.client.Endpoint())
	fmt.Printf("Model: %s\n", app.client.Model())
	if app.cfg.WebSearch {
		fmt.Println("Web search: enabled for all messages")
	}
	fmt.Println("Type /help for commands, Ctrl+C or Ctrl+D to quit")
	fmt.Println("End a line with \\ for multiline input")
	fmt.Println()

	session := &InteractiveSession{
		app: app,
		messages: []api.Message{
			{Role: api.RoleSystem, Content: config.DefaultSystemMessage},
		},
		conversationID: uuid.New().String(),
	}

	app.logger.Debug("interactive session started", logging.Fields{
		"conversation_id": session.conversationID,
		"endpoint":        app.client.Endpoint(),
		"model":           app.client.Model(),
	})

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("> "),
		prompt.WithTitle("llm-cli"),
		prompt.WithPrefixTextColor(prompt.Green),
		// Suggestion box styling - better contrast and visibility
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(10),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Println("\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Println("Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// executor handles the execution of each input line in the REPL: multiline
// continuation, slash commands, web search mode, and plain chat turns.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	// Handle multiline input with backslash continuation
	if strings.HasSuffix(input, "\\") {
		line := strings.TrimSuffix(input, "\\")
		s.inputBuffer = append(s.inputBuffer, line)
		fmt.Print("... ") // Show continuation prompt
		return
	}

	// If we have buffered lines, combine them with current input
	if len(s.inputBuffer) > 0 {
		s.inputBuffer = append(s.inputBuffer, input)
		input = strings.Join(s.inputBuffer, "\n")
		s.inputBuffer = nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	// Slash commands
	if strings.HasPrefix(input, "/") {
		if s.app.handleCommand(input, s) {
			s.exitFlag = true
		}
		return
	}

	ctx := context.Background()

	// Web search mode: automatically search for every message
	if s.app.cfg.WebSearch {
		s.app.handleWebSearch(ctx, input, &s.messages)
		return
	}

	// Regular chat turn
	s.messages = append(s.messages, api.Message{Role: api.RoleUser, Content: input})
	fmt.Println()

	sp := display.NewSpinner("Thinking...")
	sp.Start()
	response, err := s.app.client.Chat(ctx, s.messages)
	sp.Stop()
	if err != nil {
		display.ShowError(err.Error())
		// Drop the failed turn so a retry starts clean
		s.messages = s.messages[:len(s.messages)-1]
		return
	}

	if s.app.cfg.Render {
		display.ShowContentRendered(response)
	} else {
		display.ShowContent(response)
	}
	fmt.Println()

	s.messages = append(s.messages, api.Message{Role: api.RoleAssistant, Content: response})
}
