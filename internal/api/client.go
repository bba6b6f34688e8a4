package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/khanhdv/llm-cli/internal/constants"
	"github.com/khanhdv/llm-cli/internal/logging"
)

// Options configures an InferenceClient. Every field is optional; the zero
// value yields a client pointed at the default local endpoint.
type Options struct {
	// Endpoint is the base address of the inference server. Both the bare
	// server root and its /api prefix are accepted and normalized to the
	// same address.
	Endpoint string

	// Model is the model identifier sent with every request. Empty means
	// the package default. Precedence over environment and defaults is the
	// caller's concern; the client never reads the environment.
	Model string

	// HTTPClient overrides the default client (60 second timeout).
	HTTPClient *http.Client

	// Logger receives fallback and diagnostic entries. Defaults to
	// logging.DefaultLogger.
	Logger *logging.Logger
}

// InferenceClient produces text completions from a prompt or a message
// history, hiding wire-format differences between backends. Every call first
// speaks the OpenAI-compatible chat-completions protocol; when the backend
// answers 404 or 405 the client retries exactly once against the native
// generate/chat protocol. Any other failure propagates without a retry so
// auth and server errors are never mistaken for a format mismatch.
//
// The client holds no mutable state and is safe for concurrent use.
type InferenceClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewInferenceClient creates a client from opts. The endpoint is normalized
// once at construction, so http://host:11434/api and http://host:11434/ both
// address the same server.
func NewInferenceClient(opts Options) *InferenceClient {
	endpoint := NormalizeEndpoint(opts.Endpoint)
	if endpoint == "" {
		endpoint = constants.DefaultEndpoint
	}

	model := opts.Model
	if model == "" {
		model = constants.DefaultModel
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultAPITimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.DefaultLogger
	}

	return &InferenceClient{
		endpoint:   endpoint,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Endpoint returns the normalized base address the client talks to.
func (c *InferenceClient) Endpoint() string {
	return c.endpoint
}

// Model returns the model identifier sent with every request.
func (c *InferenceClient) Model() string {
	return c.model
}

// NormalizeEndpoint strips trailing slashes and a trailing /api segment from
// addr, repeating until nothing changes. The loop makes the function
// idempotent: normalizing an already normalized address returns it verbatim.
func NormalizeEndpoint(addr string) string {
	for {
		trimmed := strings.TrimRight(addr, "/")
		trimmed = strings.TrimSuffix(trimmed, "/api")
		if trimmed == addr {
			return addr
		}
		addr = trimmed
	}
}

// Generate produces a completion for a single prompt. The prompt is wrapped
// into one user message for the chat-completions call; when that route is
// missing the client falls back to native generate with the bare prompt. If
// the fallback fails too, the terminal error is *BothFormatsFailedError
// carrying both failures.
func (c *InferenceClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := c.chatCompletions(ctx, []Message{{Role: RoleUser, Content: prompt}})
	if err == nil {
		return text, nil
	}
	if !routeMissing(err) {
		return "", err
	}

	c.logger.Debug("chat-completions route missing, falling back to native generate", logging.Fields{
		"endpoint": c.endpoint,
		"model":    c.model,
	})

	text, fbErr := c.nativeGenerate(ctx, prompt)
	if fbErr != nil {
		return "", &BothFormatsFailedError{Primary: err, Fallback: fbErr}
	}
	return text, nil
}

// Chat produces a completion for a full message history. The history is sent
// unmodified on both protocols; fallback behaves as in Generate but targets
// the native chat endpoint and terminates in *NativeChatFailedError.
func (c *InferenceClient) Chat(ctx context.Context, messages []Message) (string, error) {
	text, err := c.chatCompletions(ctx, messages)
	if err == nil {
		return text, nil
	}
	if !routeMissing(err) {
		return "", err
	}

	c.logger.Debug("chat-completions route missing, falling back to native chat", logging.Fields{
		"endpoint": c.endpoint,
		"model":    c.model,
	})

	text, fbErr := c.nativeChat(ctx, messages)
	if fbErr != nil {
		return "", &NativeChatFailedError{Primary: err, Fallback: fbErr}
	}
	return text, nil
}

func (c *InferenceClient) chatCompletions(ctx context.Context, messages []Message) (string, error) {
	body, err := c.post(ctx, c.endpoint+"/v1/chat/completions", chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: constants.DefaultTemperature,
		MaxTokens:   constants.DefaultMaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}
	return parseChatResponse(body)
}

func (c *InferenceClient) nativeGenerate(ctx context.Context, prompt string) (string, error) {
	body, err := c.post(ctx, c.endpoint+"/api/generate", generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}
	return parseNativeResponse(body)
}

func (c *InferenceClient) nativeChat(ctx context.Context, messages []Message) (string, error) {
	body, err := c.post(ctx, c.endpoint+"/api/chat", nativeChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", err
	}
	return parseNativeResponse(body)
}

// post sends one JSON request and classifies every failure mode: marshal and
// build failures as *RequestError, transport failures as *TransportError,
// non-200 statuses as *BackendError. A nil error always comes with the raw
// response body.
func (c *InferenceClient) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &BackendError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
