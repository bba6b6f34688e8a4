package api

import "encoding/json"

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. An ordered slice of messages is
// the full history sent on multi-turn calls.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat-completions request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

// chatChoice and chatResponse describe the slice of the chat-completions
// response this client consumes.
type chatChoice struct {
	Message Message `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// parseChatResponse extracts the completion text from a chat-completions
// payload. The payload is valid only when the choice list is non-empty and
// the first choice carries a message with non-empty content; every other
// shape fails with *InvalidResponseFormatError. Pure function of the body,
// no fallback decisions are made here.
func parseChatResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &InvalidResponseFormatError{Payload: string(body)}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &InvalidResponseFormatError{Payload: string(body)}
	}
	return resp.Choices[0].Message.Content, nil
}
