package api

import (
	"errors"
	"testing"
)

func TestParseChatResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "valid response",
			body: `{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`,
			want: "hi",
		},
		{
			name: "extra fields ignored",
			body: `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hello"},"finish_reason":"stop"}],"usage":{"total_tokens":3}}`,
			want: "hello",
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "empty choices",
			body:    `{"choices":[]}`,
			wantErr: true,
		},
		{
			name:    "empty content",
			body:    `{"choices":[{"message":{"role":"assistant","content":""}}]}`,
			wantErr: true,
		},
		{
			name:    "missing message",
			body:    `{"choices":[{}]}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `<html>bad gateway</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChatResponse([]byte(tt.body))
			if tt.wantErr {
				var ife *InvalidResponseFormatError
				if !errors.As(err, &ife) {
					t.Fatalf("parseChatResponse() error = %v, want *InvalidResponseFormatError", err)
				}
				if ife.Payload != tt.body {
					t.Errorf("Payload = %q, want the raw body %q", ife.Payload, tt.body)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseChatResponse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseChatResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
