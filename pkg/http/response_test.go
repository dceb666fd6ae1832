package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "drivent/pkg/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFound("Booking"), http.StatusNotFound, apperrors.CodeNotFound},
		{"forbidden", apperrors.Forbidden("Room is full"), http.StatusForbidden, apperrors.CodeForbidden},
		{"payment required", apperrors.PaymentRequired("pay"), http.StatusPaymentRequired, apperrors.CodePayment},
		{"wrapped forbidden", fmt.Errorf("ctx: %w", apperrors.Forbidden("x")), http.StatusForbidden, apperrors.CodeForbidden},
		{"plain error", errors.New("mongo exploded"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError failed: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body apperrors.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = WriteError(rec, apperrors.Internal("Failed to create booking", errors.New("E11000 duplicate key")))

	if strings.Contains(rec.Body.String(), "E11000") {
		t.Errorf("internal cause leaked: %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"roomId":"abc"}`, false},
		{"empty", ``, true},
		{"malformed", `{"roomId":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(tt.body))
			var dst struct {
				RoomID string `json:"roomId"`
			}
			err := DecodeJSON(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}
