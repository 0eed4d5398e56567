package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is a non-success HTTP response. Message prefers the
// server-supplied detail over the raw status text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// IsAuthError reports whether err is a 401 or 403 response.
func IsAuthError(err error) bool {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code == http.StatusUnauthorized || serr.Code == http.StatusForbidden
	}
	return false
}

// newStatusError extracts a human-readable message from an error body.
// Django REST responses carry either {"error": "..."}, {"detail": "..."}
// or a field->messages map from a serializer.
func newStatusError(code int, status string, body []byte) *StatusError {
	msg := strings.TrimPrefix(status, fmt.Sprintf("%d ", code))

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := fieldMessage(payload, "error"); m != "" {
			msg = m
		} else if m := fieldMessage(payload, "detail"); m != "" {
			msg = m
		} else if len(payload) > 0 {
			// Serializer validation errors: report the first field.
			for field := range payload {
				if m := fieldMessage(payload, field); m != "" {
					msg = fmt.Sprintf("%s: %s", field, m)
					break
				}
			}
		}
	}

	return &StatusError{Code: code, Message: msg}
}

func fieldMessage(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
