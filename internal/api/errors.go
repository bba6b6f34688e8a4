package api

import (
	"errors"
	"fmt"
	"net/http"
)

// BackendError is an HTTP error status from the inference backend that does
// not trigger the protocol fallback. It carries the status code and the raw
// error body so the failure can be diagnosed without re-calling the backend.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError means the request went out but no response came back
// (network failure, DNS, timeout).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("no response from %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError means the request could not be constructed or sent at all.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// InvalidResponseFormatError means a response arrived but matched neither
// known payload shape. Payload holds the serialized body for diagnostics.
type InvalidResponseFormatError struct {
	Payload string
}

func (e *InvalidResponseFormatError) Error() string {
	return fmt.Sprintf("response matched no known format: %s", e.Payload)
}

// BothFormatsFailedError is terminal: the chat-completions route answered
// 404/405 and the native generate fallback failed as well. There is no
// further fallback level.
type BothFormatsFailedError struct {
	Primary  error
	Fallback error
}

func (e *BothFormatsFailedError) Error() string {
	return fmt.Sprintf("both chat-completions and native generate failed: %v", e.Fallback)
}

func (e *BothFormatsFailedError) Unwrap() error {
	return e.Fallback
}

// NativeChatFailedError is the multi-turn counterpart of
// BothFormatsFailedError, raised when the native chat fallback fails.
type NativeChatFailedError struct {
	Primary  error
	Fallback error
}

func (e *NativeChatFailedError) Error() string {
	return fmt.Sprintf("both chat-completions and native chat failed: %v", e.Fallback)
}

func (e *NativeChatFailedError) Unwrap() error {
	return e.Fallback
}

// routeMissing reports whether err is the "route not found" signal (HTTP 404
// or 405) that permits the single fallback hop. Auth failures, rate limits
// and server errors stay BackendError so they are never masked as a format
// mismatch.
func routeMissing(err error) bool {
	var be *BackendError
	if errors.As(err, &be) {
		return be.StatusCode == http.StatusNotFound || be.StatusCode == http.StatusMethodNotAllowed
	}
	return false
}
