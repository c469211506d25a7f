package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		return fmt.Sprintf("askql service %d", e.StatusCode)
	}
	return fmt.Sprintf("askql service %d: %s", e.StatusCode, msg)
}

// parseAPIError extracts a message from common error bodies: FastAPI style
// {"detail": ...} or {"error": "..."}; otherwise the trimmed body is used.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			e.Message = s
		} else {
			e.Message = string(payload.Detail)
		}
		return e
	}
	e.Message = payload.Error
	return e
}
