package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFound("book not found")
	if !Is(err, ErrNotFound) {
		t.Error("expected NotFound to match ErrNotFound")
	}
	if Is(err, ErrValidation) {
		t.Error("expected NotFound not to match ErrValidation")
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	inner := Validation("title is required")
	wrapped := fmt.Errorf("create book: %w", inner)

	if !Is(wrapped, ErrValidation) {
		t.Error("expected wrapped validation error to match")
	}
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ErrInternal.WithCause(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
	if err.Error() != "internal error: disk full" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	// Original sentinel must be untouched.
	if ErrInternal.Unwrap() != nil {
		t.Error("sentinel mutated by WithCause")
	}
}

func TestValidationWithDetails(t *testing.T) {
	details := map[string]string{"title": "is required"}
	err := ValidationWithDetails("validation failed", details)

	if err.Code != CodeValidation {
		t.Errorf("Code: got %q", err.Code)
	}
	if err.Details == nil {
		t.Error("Details: expected non-nil")
	}
	if err.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("HTTPStatus: got %d", err.HTTPStatus())
	}
}
