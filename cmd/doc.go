// Package cmd implements the CLI commands for llm-cli.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, and flags
//   - version.go: Version subcommand
//   - config_cmd.go: Config file subcommands (init, path)
//
// ## Interactive Mode
//
//   - interactive.go: Interactive REPL session management and input handling
//   - slash_commands.go: Slash command handlers (/model, /endpoint, /web, ...)
//   - websearch.go: Web search integration for both one-shot and REPL flows
//
// # Key Components
//
// ## App
//
// The App struct holds application state and configuration. It's created in
// Execute(), validated against flags, environment, and the config file, and
// passed through command handlers. setupClients() rebuilds the inference
// client whenever a slash command switches the model or endpoint, because
// the client itself is immutable.
//
// ## InteractiveSession
//
// Manages interactive chat sessions including:
//   - In-memory conversation history (never persisted)
//   - Multiline input with backslash continuation
//   - Slash command dispatch and auto-completion
//   - Graceful Ctrl+C / Ctrl+D exit
//
// ## Web Search
//
// websearch.go glues the web_search tool into the chat flow: the raw search
// payload is wrapped into the user turn so the model answers from it. Search
// failures surface as a fixed no-results message, never as an error.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
