package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khanhdv/llm-cli/internal/constants"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434"},
		{"many trailing slashes", "http://localhost:11434///", "http://localhost:11434"},
		{"api suffix", "http://localhost:11434/api", "http://localhost:11434"},
		{"api suffix with slash", "http://localhost:11434/api/", "http://localhost:11434"},
		{"repeated api suffix", "http://localhost:11434/api/api", "http://localhost:11434"},
		{"unrelated path kept", "http://gpu-box:8000/v1", "http://gpu-box:8000/v1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEndpoint(tt.addr)
			if got != tt.want {
				t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tt.addr, got, tt.want)
			}

			// Normalizing an already normalized address must not change it
			if again := NormalizeEndpoint(got); again != got {
				t.Errorf("NormalizeEndpoint(%q) = %q, not idempotent", got, again)
			}
		})
	}
}

func TestNewInferenceClient_Defaults(t *testing.T) {
	c := NewInferenceClient(Options{})
	if c.Endpoint() != constants.DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", c.Endpoint(), constants.DefaultEndpoint)
	}
	if c.Model() != constants.DefaultModel {
		t.Errorf("Model() = %q, want %q", c.Model(), constants.DefaultModel)
	}
}

func TestNewInferenceClient_ExplicitOptionsWin(t *testing.T) {
	c := NewInferenceClient(Options{Endpoint: "http://gpu-box:8000/api/", Model: "mistral"})
	if c.Endpoint() != "http://gpu-box:8000" {
		t.Errorf("Endpoint() = %q, want the normalized explicit address", c.Endpoint())
	}
	if c.Model() != "mistral" {
		t.Errorf("Model() = %q, want %q", c.Model(), "mistral")
	}
}

func TestGenerate_UsesChatCompletions(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	client := NewInferenceClient(Options{Endpoint: srv.URL, Model: "test-model"})
	got, err := client.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Generate() = %q, want %q", got, "hello")
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("request path = %q, want /v1/chat/completions", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("request model = %q, want test-model", gotBody.Model)
	}
	if gotBody.Temperature != constants.DefaultTemperature {
		t.Errorf("request temperature = %v, want %v", gotBody.Temperature, constants.DefaultTemperature)
	}
	if gotBody.MaxTokens != constants.DefaultMaxTokens {
		t.Errorf("request max_tokens = %d, want %d", gotBody.MaxTokens, constants.DefaultMaxTokens)
	}
	if gotBody.Stream {
		t.Error("request has streaming enabled")
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != RoleUser || gotBody.Messages[0].Content != "hi" {
		t.Errorf("request messages = %+v, want one user message %q", gotBody.Messages, "hi")
	}
}

func TestGenerate_FallsBackOnMissingRoute(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusMethodNotAllowed} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var primaryCalls, fallbackCalls int
			var gotFallback generateRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/v1/chat/completions":
					primaryCalls++
					http.Error(w, "no such route", status)
				case "/api/generate":
					fallbackCalls++
					if err := json.NewDecoder(r.Body).Decode(&gotFallback); err != nil {
						t.Errorf("decode fallback request: %v", err)
					}
					_, _ = w.Write([]byte(`{"response":"from native"}`))
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
				}
			}))
			defer srv.Close()

			client := NewInferenceClient(Options{Endpoint: srv.URL, Model: "m"})
			got, err := client.Generate(context.Background(), "why?")
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got != "from native" {
				t.Errorf("Generate() = %q, want %q", got, "from native")
			}
			if primaryCalls != 1 || fallbackCalls != 1 {
				t.Errorf("calls = %d primary, %d fallback; want exactly 1 of each", primaryCalls, fallbackCalls)
			}
			if gotFallback.Model != "m" || gotFallback.Prompt != "why?" || gotFallback.Stream {
				t.Errorf("fallback request = %+v, want same model and prompt with stream off", gotFallback)
			}
		})
	}
}

func TestGenerate_NoFallbackOnBackendError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"internal server error", http.StatusInternalServerError},
		{"unauthorized", http.StatusUnauthorized},
		{"too many requests", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fallbackCalls int
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/chat/completions" {
					fallbackCalls++
				}
				http.Error(w, "backend exploded", tt.status)
			}))
			defer srv.Close()

			client := NewInferenceClient(Options{Endpoint: srv.URL})
			_, err := client.Generate(context.Background(), "hi")

			var be *BackendError
			if !errors.As(err, &be) {
				t.Fatalf("Generate() error = %T (%v), want *BackendError", err, err)
			}
			if be.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", be.StatusCode, tt.status)
			}
			if !strings.Contains(be.Body, "backend exploded") {
				t.Errorf("Body = %q, want the backend payload", be.Body)
			}
			if fallbackCalls != 0 {
				t.Errorf("fallback calls = %d, want 0", fallbackCalls)
			}
		})
	}
}

func TestGenerate_BothFormatsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			http.Error(w, "no such route", http.StatusNotFound)
		case "/api/generate":
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewInferenceClient(Options{Endpoint: srv.URL})
	_, err := client.Generate(context.Background(), "hi")

	var bff *BothFormatsFailedError
	if !errors.As(err, &bff) {
		t.Fatalf("Generate() error = %T (%v), want *BothFormatsFailedError", err, err)
	}

	var primary *BackendError
	if !errors.As(bff.Primary, &primary) || primary.StatusCode != http.StatusNotFound {
		t.Errorf("Primary = %v, want a 404 *BackendError", bff.Primary)
	}
	var fallback *BackendError
	if !errors.As(bff.Fallback, &fallback) || fallback.StatusCode != http.StatusInternalServerError {
		t.Errorf("Fallback = %v, want a 500 *BackendError", bff.Fallback)
	}
}

func TestChat_FallsBackToNativeChat(t *testing.T) {
	history := []Message{
		{Role: RoleSystem, Content: "Be precise and concise."},
		{Role: RoleUser, Content: "first question"},
		{Role: RoleAssistant, Content: "first answer"},
		{Role: RoleUser, Content: "second question"},
	}

	var gotNative nativeChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			http.Error(w, "no such route", http.StatusNotFound)
		case "/api/chat":
			if err := json.NewDecoder(r.Body).Decode(&gotNative); err != nil {
				t.Errorf("decode native chat request: %v", err)
			}
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"native answer"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewInferenceClient(Options{Endpoint: srv.URL, Model: "m"})
	got, err := client.Chat(context.Background(), history)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "native answer" {
		t.Errorf("Chat() = %q, want %q", got, "native answer")
	}
	if len(gotNative.Messages) != len(history) {
		t.Fatalf("fallback sent %d messages, want %d", len(gotNative.Messages), len(history))
	}
	for i := range history {
		if gotNative.Messages[i] != history[i] {
			t.Errorf("fallback message %d = %+v, want %+v", i, gotNative.Messages[i], history[i])
		}
	}
	if gotNative.Stream {
		t.Error("native chat request has streaming enabled")
	}
}

func TestChat_NativeChatFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			http.Error(w, "no such route", http.StatusMethodNotAllowed)
		case "/api/chat":
			http.Error(w, "out of memory", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewInferenceClient(Options{Endpoint: srv.URL})
	_, err := client.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	var ncf *NativeChatFailedError
	if !errors.As(err, &ncf) {
		t.Fatalf("Chat() error = %T (%v), want *NativeChatFailedError", err, err)
	}
	if ncf.Primary == nil || ncf.Fallback == nil {
		t.Errorf("terminal error missing a leg: primary=%v fallback=%v", ncf.Primary, ncf.Fallback)
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close() // nothing listens anymore

	client := NewInferenceClient(Options{Endpoint: endpoint})
	_, err := client.Generate(context.Background(), "hi")

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Generate() error = %T (%v), want *TransportError", err, err)
	}
	if !strings.Contains(te.URL, endpoint) {
		t.Errorf("TransportError.URL = %q, want it to carry the target %q", te.URL, endpoint)
	}
}

func TestGenerate_InvalidFormatDoesNotFallBack(t *testing.T) {
	var fallbackCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			fallbackCalls++
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewInferenceClient(Options{Endpoint: srv.URL})
	_, err := client.Generate(context.Background(), "hi")

	var ife *InvalidResponseFormatError
	if !errors.As(err, &ife) {
		t.Fatalf("Generate() error = %T (%v), want *InvalidResponseFormatError", err, err)
	}
	if ife.Payload != "{}" {
		t.Errorf("Payload = %q, want the raw body", ife.Payload)
	}
	if fallbackCalls != 0 {
		t.Errorf("fallback calls = %d, want 0; format mismatch on a 200 must not trigger fallback", fallbackCalls)
	}
}
