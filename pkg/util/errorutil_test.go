package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCodesMapToStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "validation", err: NewValidationError("bad", nil), code: CodeValidation, status: http.StatusBadRequest},
		{name: "conflict", err: NewConflict("dup", nil), code: CodeConflict, status: http.StatusConflict},
		{name: "authentication", err: NewAuthenticationError(), code: CodeAuthentication, status: http.StatusUnauthorized},
		{name: "invalid token", err: NewInvalidToken("bad"), code: CodeInvalidToken, status: http.StatusUnauthorized},
		{name: "not found", err: NewNotFound("user", nil), code: CodeNotFound, status: http.StatusNotFound},
		{name: "forbidden", err: NewForbidden("no"), code: CodeForbidden, status: http.StatusForbidden},
		{name: "internal", err: NewInternalError(errors.New("boom")), code: CodeInternal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			if de.Code != tt.code {
				t.Errorf("code = %q, want %q", de.Code, tt.code)
			}
			if de.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", de.HTTPStatus, tt.status)
			}
			if !IsCode(tt.err, tt.code) {
				t.Errorf("IsCode(%q) = false", tt.code)
			}
		})
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	if de.Code != CodeInternal {
		t.Errorf("code = %q, want internal", de.Code)
	}

	// wrapped domain errors keep their kind
	wrapped := fmt.Errorf("context: %w", NewConflict("dup", nil))
	if !IsCode(wrapped, CodeConflict) {
		t.Error("wrapped conflict lost its code")
	}
}
