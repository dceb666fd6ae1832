package validator

import (
	"errors"
	"testing"

	"drivent/pkg/logger"
	"drivent/pkg/model"
	"drivent/pkg/validation"
)

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	if err := v.Validate(&model.BookingRequest{RoomID: "507f1f77bcf86cd799439011"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name    string
		roomID  string
		wantMsg string
	}{
		{"missing room", "", "roomId is required"},
		{"numeric room id", "1", "roomId must be a valid MongoDB ObjectID"},
		{"short hex", "507f1f77bcf86cd79943901", "roomId must be a valid MongoDB ObjectID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&model.BookingRequest{RoomID: tt.roomID})
			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verrs[0].Message, tt.wantMsg)
			}
		})
	}
}
