package api

import "encoding/json"

// generateRequest is the native single-turn request body for /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// nativeChatRequest is the native multi-turn request body for /api/chat.
// The message list is identical to the chat-completions one.
type nativeChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// nativeResponse covers both native reply shapes: /api/generate answers with
// a top-level response string, /api/chat with a message object.
type nativeResponse struct {
	Response string   `json:"response"`
	Message  *Message `json:"message"`
}

// parseNativeResponse extracts the completion text from a native payload.
// The top-level response field is checked first, then message.content; any
// other shape fails with *InvalidResponseFormatError. Pure function of the
// body.
func parseNativeResponse(body []byte) (string, error) {
	var resp nativeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &InvalidResponseFormatError{Payload: string(body)}
	}
	if resp.Response != "" {
		return resp.Response, nil
	}
	if resp.Message != nil && resp.Message.Content != "" {
		return resp.Message.Content, nil
	}
	return "", &InvalidResponseFormatError{Payload: string(body)}
}
