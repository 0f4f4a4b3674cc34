package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if !errors.Is(wrapped, originalErr) {
		t.Errorf("expected errors.Is to see through the wrapper")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{InvalidState("cannot confirm draft"), CodeInvalidState, http.StatusBadRequest},
		{RoomInactive("room is inactive"), CodeRoomInactive, http.StatusConflict},
		{Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{ConcurrencyConflict("stale version"), CodeConcurrencyConflict, http.StatusConflict},
		{Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{Unauthorized("missing identity"), CodeUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := Conflict("slot taken")

	if !HasCode(err, CodeConflict) {
		t.Error("expected HasCode to match CONFLICT")
	}
	if HasCode(err, CodeNotFound) {
		t.Error("did not expect HasCode to match NOT_FOUND")
	}

	wrapped := fmt.Errorf("submit failed: %w", err)
	if !HasCode(wrapped, CodeConflict) {
		t.Error("expected HasCode to unwrap fmt-wrapped errors")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Error("did not expect HasCode to match a plain error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Room")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected plain error to map to %s, got %s", CodeInternal, got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("expected the original error to be preserved as the cause")
	}
}
