package cmd

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/khanhdv/llm-cli/internal/api"
	"github.com/khanhdv/llm-cli/internal/config"
	"github.com/khanhdv/llm-cli/internal/constants"
	"github.com/khanhdv/llm-cli/internal/display"
	"github.com/khanhdv/llm-cli/internal/logging"
)

// App holds the application state shared between the one-shot and
// interactive flows.
type App struct {
	cfg       *config.Config
	client    *api.InferenceClient
	webSearch api.Tool
	logger    *logging.Logger
	verbose   bool
	citations bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:    config.NewConfig(),
		logger: logging.FromEnv(),
	}
}

// Execute runs the root command
func Execute() {
	// A .env in the working directory supplies variables for local setups;
	// a missing file is not an error
	_ = godotenv.Load()

	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "llm-cli [prompt]",
		Short: "A CLI client for self-hosted LLM servers with web search",
		Long: `llm-cli talks to self-hosted LLM servers (Ollama, vLLM, LM Studio,
llama.cpp) over the OpenAI-compatible chat-completions API and falls back to
the native Ollama API when the server does not expose one. Optional web
search is powered by Bright Data.

Examples:
  llm-cli "What is Kubernetes?"
  llm-cli -m qwen2.5-coder "Explain Docker networking"
  llm-cli -e http://gpu-box:8000 "Summarize the French Revolution"
  llm-cli --web "Latest news on Go 1.24"
  cat main.go | llm-cli "Review this code"
  llm-cli -i                            # Interactive mode
  llm-cli -ir                           # Interactive with markdown rendering`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown with colors and formatting")
	rootCmd.Flags().BoolVarP(&app.cfg.WebSearch, "web", "w", false, "Search the web first (requires BRIGHTDATA_API_TOKEN)")
	rootCmd.Flags().BoolVarP(&app.citations, "citations", "c", false, "Show the search source after web-augmented answers")
	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive chat mode")
	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Model name (e.g., llama3.2, qwen2.5-coder)")
	rootCmd.Flags().StringVarP(&app.cfg.Endpoint, "endpoint", "e", "", "Base URL of the inference server")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if app.verbose {
		app.logger.SetLevel(logging.LevelDebug)
		logging.SetLevel(logging.LevelDebug)
	}

	// Validate config (flags > env > config file > defaults)
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	// Initialize markdown renderer if render flag is set
	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			app.logger.Warn("markdown renderer unavailable, falling back to plain output", logging.Fields{
				"error": err.Error(),
			})
		}
	}

	app.setupClients()

	// Interactive mode
	if app.cfg.Interactive {
		app.runInteractive()
		return
	}

	prompt, ok := app.resolvePrompt(args)
	if !ok {
		_ = cmd.Help()
		os.Exit(1)
	}

	app.logger.Debug("running one-shot query", logging.Fields{
		"endpoint": app.client.Endpoint(),
		"model":    app.client.Model(),
		"web":      app.cfg.WebSearch,
	})

	ctx := context.Background()

	if app.cfg.WebSearch {
		app.runWithWebSearch(ctx, prompt)
		return
	}

	sp := display.NewSpinner("Thinking...")
	sp.Start()
	response, err := app.client.Generate(ctx, prompt)
	sp.Stop()
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	app.showResponse(response)
}

// setupClients builds the inference client and the web search tool from the
// validated configuration. Called again when a slash command switches the
// model or the endpoint. With --verbose every request and response is traced
// through the logging round tripper, bodies included.
func (app *App) setupClients() {
	var httpClient *http.Client
	if app.verbose {
		httpClient = &http.Client{
			Timeout: constants.DefaultAPITimeout,
			Transport: logging.NewLoggingRoundTripper(
				http.DefaultTransport,
				logging.NewHTTPLogger(app.logger),
				true,
			),
		}
	}

	app.client = api.NewInferenceClient(api.Options{
		Endpoint:   app.cfg.Endpoint,
		Model:      app.cfg.Model,
		HTTPClient: httpClient,
		Logger:     app.logger,
	})
	app.webSearch = api.NewWebSearchTool(api.NewSearchClient(api.SearchOptions{
		Token:  app.cfg.SearchToken,
		Zone:   app.cfg.SearchZone,
		Logger: app.logger,
	}))
}

// resolvePrompt returns the prompt from the positional argument or, when the
// CLI is fed through a pipe, from stdin.
func (app *App) resolvePrompt(args []string) (string, bool) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], true
	}

	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return "", false
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", false
	}
	prompt := strings.TrimSpace(string(data))
	return prompt, prompt != ""
}

// runWithWebSearch searches first, then asks the model to answer from the
// results. One spinner spans both phases.
func (app *App) runWithWebSearch(ctx context.Context, prompt string) {
	sp := display.NewSpinner("Searching the web...")
	sp.Start()
	searchContext := app.webSearch.Run(ctx, prompt)
	sp.UpdateMessage("Thinking...")

	messages := []api.Message{
		{Role: api.RoleSystem, Content: config.DefaultSystemMessage},
		{Role: api.RoleUser, Content: buildWebSearchMessage(searchContext, prompt)},
	}

	response, err := app.client.Chat(ctx, messages)
	sp.Stop()
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	app.showResponse(response)
	app.showSearchCitations(searchContext)
}

// showResponse prints the answer, rendered when --render is active.
func (app *App) showResponse(response string) {
	if app.cfg.Render {
		display.ShowContentRendered(response)
	} else {
		display.ShowContent(response)
	}
}
