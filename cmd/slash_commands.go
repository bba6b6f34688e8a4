package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/khanhdv/llm-cli/internal/api"
	"github.com/khanhdv/llm-cli/internal/config"
	"github.com/khanhdv/llm-cli/internal/display"
)

// handleCommand processes slash commands in interactive mode.
// Returns true if the session should exit, false otherwise.
func (app *App) handleCommand(input string, session *InteractiveSession) bool {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/exit", "/quit", "/q":
		fmt.Println("Goodbye!")
		return true

	case "/clear", "/c":
		session.messages = []api.Message{
			{Role: api.RoleSystem, Content: config.DefaultSystemMessage},
		}
		// A cleared conversation gets a fresh ID
		session.conversationID = uuid.New().String()
		fmt.Println("Conversation cleared.")

	case "/help", "/h":
		app.showHelp()

	case "/model":
		app.handleModelCommand(parts)

	case "/endpoint":
		app.handleEndpointCommand(parts)

	case "/render":
		app.handleRenderCommand(parts)

	case "/web":
		app.handleWebCommand(parts, session)

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type /help for available commands")
	}

	return false
}

// showHelp displays the help message with all available commands.
func (app *App) showHelp() {
	fmt.Println("\nCommands:")
	fmt.Printf("  %-24s %s\n", "/exit, /quit, /q", "Exit interactive mode")
	fmt.Printf("  %-24s %s\n", "/clear, /c", "Clear conversation history")
	fmt.Printf("  %-24s %s\n", "/model <name>", "Switch model")
	fmt.Printf("  %-24s %s\n", "/model", "Show current model")
	fmt.Printf("  %-24s %s\n", "/endpoint <url>", "Switch inference server")
	fmt.Printf("  %-24s %s\n", "/endpoint", "Show current server")
	fmt.Printf("  %-24s %s\n", "/web <query>", "Search web and ask about results")
	fmt.Printf("  %-24s %s\n", "/web on", "Search the web for every message")
	fmt.Printf("  %-24s %s\n", "/web off", "Disable automatic web search")
	fmt.Printf("  %-24s %s\n", "/render on|off", "Toggle markdown rendering")
	fmt.Printf("  %-24s %s\n", "/help, /h", "Show this help")
	fmt.Println()
}

// handleModelCommand processes the /model command to show or switch models.
// Switching rebuilds the inference client; the running conversation is kept.
func (app *App) handleModelCommand(parts []string) {
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		fmt.Printf("Current model: %s\n", app.client.Model())
		return
	}

	app.cfg.Model = strings.TrimSpace(parts[1])
	app.setupClients()
	fmt.Printf("Switched to model: %s\n", app.client.Model())
}

// handleEndpointCommand processes the /endpoint command to show or switch
// inference servers. The address is normalized exactly as at startup, so
// /endpoint http://host/api and /endpoint http://host/ land on the same
// server.
func (app *App) handleEndpointCommand(parts []string) {
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		fmt.Printf("Current server: %s\n", app.client.Endpoint())
		return
	}

	app.cfg.Endpoint = strings.TrimSpace(parts[1])
	app.setupClients()
	fmt.Printf("Switched to server: %s\n", app.client.Endpoint())
}

// handleRenderCommand processes the /render command to toggle markdown
// rendering.
func (app *App) handleRenderCommand(parts []string) {
	if len(parts) < 2 {
		status := "off"
		if app.cfg.Render {
			status = "on"
		}
		fmt.Printf("Markdown rendering: %s\n", status)
		fmt.Println("Usage: /render on | /render off")
		return
	}

	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "on":
		if err := display.InitRenderer(); err != nil {
			display.ShowError(fmt.Sprintf("Failed to initialize renderer: %v", err))
			return
		}
		app.cfg.Render = true
		fmt.Println("Markdown rendering enabled.")
	case "off":
		app.cfg.Render = false
		fmt.Println("Markdown rendering disabled.")
	default:
		fmt.Println("Usage: /render on | /render off")
	}
}

// handleWebCommand processes the /web command for web search operations.
// Supports: /web <query>, /web on, /web off.
func (app *App) handleWebCommand(parts []string, session *InteractiveSession) {
	if len(parts) < 2 {
		status := "off"
		if app.cfg.WebSearch {
			status = "on"
		}
		fmt.Printf("Web search: %s\n", status)
		fmt.Println("Usage: /web <query> | /web on | /web off")
		return
	}

	arg := strings.TrimSpace(parts[1])
	switch strings.ToLower(arg) {
	case "on":
		if app.cfg.SearchToken == "" {
			display.ShowError(config.ErrSearchTokenNotFound.Error())
			return
		}
		app.cfg.WebSearch = true
		fmt.Println("Web search enabled for all messages.")
	case "off":
		app.cfg.WebSearch = false
		fmt.Println("Web search disabled.")
	default:
		if app.cfg.SearchToken == "" {
			display.ShowError(config.ErrSearchTokenNotFound.Error())
			return
		}
		app.handleWebSearch(context.Background(), arg, &session.messages)
	}
}
