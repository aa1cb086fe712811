package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestAppErrorString(t *testing.T) {
	err := New(ErrCodeNotFound, "missing", http.StatusNotFound)
	if got := err.Error(); got != "NOT_FOUND: missing" {
		t.Errorf("unexpected error string: %s", got)
	}

	cause := stderrors.New("disk full")
	err = Internal(cause)
	if got := err.Error(); got != "INTERNAL_ERROR: An unexpected error occurred. (cause: disk full)" {
		t.Errorf("unexpected error string: %s", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := DatabaseError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestRetryableDetection(t *testing.T) {
	if !New(ErrCodeTimeout, "t", http.StatusGatewayTimeout).Retryable {
		t.Error("timeout should be retryable")
	}
	if New(ErrCodeForbidden, "f", http.StatusForbidden).Retryable {
		t.Error("forbidden should not be retryable")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NotFound("note", "42"), http.StatusNotFound},
		{Unauthorized(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{TokenExpired(), http.StatusUnauthorized},
		{InvalidToken(), http.StatusUnauthorized},
		{Validation("bad"), http.StatusBadRequest},
		{Internal(nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.err.Code, tc.status, tc.err.HTTPStatus)
		}
	}
}

func TestToResponse(t *testing.T) {
	err := NotFound("note", "42")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("unexpected code: %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "42" {
		t.Errorf("expected id detail, got %v", resp.Error.Details)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := stderrors.Join(stderrors.New("outer"), Unauthorized(""))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeUnauthorized {
		t.Errorf("expected unwrapped AppError, got %v %v", appErr, ok)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}
