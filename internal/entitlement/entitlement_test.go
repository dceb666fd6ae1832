package entitlement

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "drivent/pkg/errors"
	"drivent/pkg/model"
)

func paidHotelTicket() (*model.Enrollment, *model.Ticket, *model.TicketType) {
	return &model.Enrollment{ID: "e1", UserID: "u1"},
		&model.Ticket{ID: "t1", EnrollmentID: "e1", TicketTypeID: "tt1", Status: model.TicketStatusPaid},
		&model.TicketType{ID: "tt1", IncludesHotel: true}
}

func TestCheckHotelAccess(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType)
		wantErr error
	}{
		{"paid in person with hotel", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) {}, nil},
		{"no enrollment", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) { *e = nil }, ErrNoEnrollment},
		{"no ticket", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) { *tk = nil }, ErrNoTicket},
		{"no ticket type", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) { *tt = nil }, ErrNoTicketType},
		{"remote", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) { (*tt).IsRemote = true }, ErrRemoteTicket},
		{"no hotel", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) { (*tt).IncludesHotel = false }, ErrHotelNotIncluded},
		{"reserved", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) {
			(*tk).Status = model.TicketStatusReserved
		}, ErrTicketNotPaid},
		{"enrollment checked before ticket", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) {
			*e = nil
			*tk = nil
		}, ErrNoEnrollment},
		{"remote checked before payment", func(e **model.Enrollment, tk **model.Ticket, tt **model.TicketType) {
			(*tt).IsRemote = true
			(*tk).Status = model.TicketStatusReserved
		}, ErrRemoteTicket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enrollment, ticket, ticketType := paidHotelTicket()
			tt.mutate(&enrollment, &ticket, &ticketType)

			err := CheckHotelAccess(enrollment, ticket, ticketType)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("CheckHotelAccess() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckHotelAccess_ForbiddenKinds(t *testing.T) {
	for _, err := range []error{ErrRemoteTicket, ErrHotelNotIncluded, ErrTicketNotPaid, ErrRoomFull} {
		if !IsForbidden(err) || IsNotFound(err) {
			t.Errorf("%v should be forbidden", err)
		}
	}
	for _, err := range []error{ErrNoEnrollment, ErrNoTicket, ErrNoTicketType, ErrRoomNotFound} {
		if !IsNotFound(err) || IsForbidden(err) {
			t.Errorf("%v should be not found", err)
		}
	}
}

func TestCheckRoomCapacity(t *testing.T) {
	tests := []struct {
		name     string
		room     *model.Room
		occupied int64
		wantErr  error
	}{
		{"space left", &model.Room{Capacity: 4}, 2, nil},
		{"one spot left", &model.Room{Capacity: 3}, 2, nil},
		{"exactly full", &model.Room{Capacity: 3}, 3, ErrRoomFull},
		{"over full", &model.Room{Capacity: 1}, 5, ErrRoomFull},
		{"zero capacity", &model.Room{Capacity: 0}, 0, ErrRoomFull},
		{"missing room", nil, 0, ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRoomCapacity(tt.room, tt.occupied)
			if err != tt.wantErr {
				t.Errorf("CheckRoomCapacity() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToAppError(t *testing.T) {
	if got := ToAppError(ErrRoomFull, "book room"); got.StatusCode() != http.StatusForbidden || got.Message != "Room is full" {
		t.Errorf("unexpected mapping %+v", got)
	}
	if got := ToAppError(fmt.Errorf("wrapped: %w", ErrNoTicket), "book room"); got.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped violation, got %d", got.StatusCode())
	}

	conflict := apperrors.Conflict("busy")
	if got := ToAppError(conflict, "book room"); got != conflict {
		t.Error("AppErrors must pass through unchanged")
	}

	cause := errors.New("socket closed")
	got := ToAppError(cause, "book room")
	if got.Code != apperrors.CodeInternal || got.Message != "Failed to book room" || !errors.Is(got, cause) {
		t.Errorf("unexpected internal mapping %+v", got)
	}
}
