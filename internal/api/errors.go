package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 response. Stored credentials are
	// already gone by the time the caller sees it.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrTransport wraps failures where no HTTP response was received.
	ErrTransport = errors.New("api: network error")
)

// Error is a non-2xx response.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// Message returns the text that should be shown to the user for err.
func Message(err error) string {
	var apiErr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrTransport):
		return "Network error. Please check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// serverMessage extracts the detail the backend put in an error body.
// FastAPI style validation errors carry detail as a list of {msg}.
func serverMessage(body map[string]any) string {
	switch d := body["detail"].(type) {
	case string:
		if d != "" {
			return d
		}
	case []any:
		var msgs []string
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["msg"].(string); ok && s != "" {
					msgs = append(msgs, s)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	for _, k := range []string{"message", "error"} {
		if s, ok := body[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
