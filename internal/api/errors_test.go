package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewStatusError_MessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"error field", 400, `{"error": "Voice selection failed"}`, "Voice selection failed"},
		{"detail field", 401, `{"detail": "Token is invalid"}`, "Token is invalid"},
		{"error wins over detail", 400, `{"detail": "d", "error": "e"}`, "e"},
		{"serializer field list", 400, `{"email": ["This field is required."]}`, "email: This field is required."},
		{"serializer field string", 400, `{"password": "too short"}`, "password: too short"},
		{"non-json body", 500, `<html>Server Error</html>`, "Internal Server Error"},
		{"empty body", 502, ``, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := fmt.Sprintf("%d %s", tt.code, http.StatusText(tt.code))
			serr := newStatusError(tt.code, status, []byte(tt.body))
			if serr.Code != tt.code {
				t.Errorf("code = %d, want %d", serr.Code, tt.code)
			}
			if serr.Message != tt.want {
				t.Errorf("message = %q, want %q", serr.Message, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&StatusError{Code: http.StatusUnauthorized}) {
		t.Error("401 should be an auth error")
	}
	if !IsAuthError(&StatusError{Code: http.StatusForbidden}) {
		t.Error("403 should be an auth error")
	}
	if IsAuthError(&StatusError{Code: http.StatusNotFound}) {
		t.Error("404 is not an auth error")
	}
	if IsAuthError(errors.New("plain")) {
		t.Error("non-status errors are not auth errors")
	}

	// Wrapped status errors still read as auth failures.
	wrapped := fmt.Errorf("request failed: %w", &StatusError{Code: 401, Message: "expired"})
	if !IsAuthError(wrapped) {
		t.Error("wrapped 401 should be an auth error")
	}
}

func TestStatusError_Error(t *testing.T) {
	serr := &StatusError{Code: 404, Message: "not found"}
	if serr.Error() != "404: not found" {
		t.Errorf("error = %q", serr.Error())
	}
}
