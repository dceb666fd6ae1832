package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Hotel", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("rule"), CodeForbidden, http.StatusForbidden},
		{"payment required", PaymentRequired("pay"), CodePayment, http.StatusPaymentRequired},
		{"conflict", Conflict("busy"), CodeConflict, http.StatusConflict},
		{"internal", Internal("oops", cause), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Mongo"), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", TooManyRequests("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"media type", UnsupportedMediaType("json only"), CodeMediaType, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Hotel", "123")
	if err.Message != "Hotel not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["id"] != "123" || err.Details["resource"] != "Hotel" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("database connection failed")
	wrapped := Wrap(cause, CodeInternal, "internal error", http.StatusInternalServerError)

	want := "INTERNAL_ERROR: internal error (caused by: database connection failed)"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if got := Forbidden("nope").Error(); got != "FORBIDDEN: nope" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Forbidden("rule")
	if AsAppError(appErr) != appErr {
		t.Error("expected the same AppError back")
	}

	wrapped := fmt.Errorf("context: %w", appErr)
	if AsAppError(wrapped) != appErr {
		t.Error("expected AsAppError to unwrap")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to see through wrapping")
	}

	plain := errors.New("plain")
	got := AsAppError(plain)
	if got.Code != CodeInternal || got.Err != plain {
		t.Errorf("expected plain errors to become internal, got %+v", got)
	}
	if IsAppError(plain) {
		t.Error("plain error reported as AppError")
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(NotFound("Booking"), CodeNotFound) {
		t.Error("expected NOT_FOUND")
	}
	if HasCode(NotFound("Booking"), CodeForbidden) {
		t.Error("did not expect FORBIDDEN")
	}
	if HasCode(errors.New("x"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	raw := NotFoundWithID("Booking", "42").ToJSON()

	var resp ErrorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", err)
	}
	if resp.Code != CodeNotFound || resp.Message != "Booking not found" {
		t.Errorf("unexpected payload %+v", resp)
	}
}
