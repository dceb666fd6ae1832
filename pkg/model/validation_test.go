package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestRequestDTOs_Validation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name        string
		req         any
		expectValid bool
	}{
		{"booking valid", &BookingRequest{RoomID: "507f1f77bcf86cd799439011"}, true},
		{"booking missing room", &BookingRequest{}, false},
		{"booking numeric room", &BookingRequest{RoomID: "42"}, false},
		{"ticket valid", &TicketRequest{TicketTypeID: "507f1f77bcf86cd799439012"}, true},
		{"ticket missing type", &TicketRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err == nil) != tt.expectValid {
				t.Errorf("valid = %v, want %v (err: %v)", err == nil, tt.expectValid, err)
			}
		})
	}
}

func TestTicket_IsPaid(t *testing.T) {
	if (&Ticket{Status: TicketStatusReserved}).IsPaid() {
		t.Error("reserved ticket reported as paid")
	}
	if !(&Ticket{Status: TicketStatusPaid}).IsPaid() {
		t.Error("paid ticket reported as unpaid")
	}
}

func TestBookingWithRoom_JSONShape(t *testing.T) {
	raw, err := json.Marshal(BookingWithRoom{
		ID:   "b1",
		Room: &Room{ID: "r1", Name: "101", Capacity: 3, HotelID: "h1"},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"id":"b1"`, `"Room":{`, `"hotelId":"h1"`, `"capacity":3`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}
}
