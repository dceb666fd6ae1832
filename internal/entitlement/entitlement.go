// Package entitlement decides whether a user may use the hotel area and whether
// a room still has space for one more booking.
package entitlement

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "drivent/pkg/errors"
	"drivent/pkg/model"
)

// Kind classifies a Violation as a missing resource or a refused action.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
)

// Violation is a business rule failure. The sentinels below are compared by identity.
type Violation struct {
	Kind    Kind
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

var (
	ErrNoEnrollment     = &Violation{Kind: KindNotFound, Message: "Enrollment not found"}
	ErrNoTicket         = &Violation{Kind: KindNotFound, Message: "Ticket not found"}
	ErrNoTicketType     = &Violation{Kind: KindNotFound, Message: "Ticket type not found"}
	ErrRemoteTicket     = &Violation{Kind: KindForbidden, Message: "Remote tickets do not include lodging"}
	ErrHotelNotIncluded = &Violation{Kind: KindForbidden, Message: "Ticket type does not include hotel"}
	ErrTicketNotPaid    = &Violation{Kind: KindForbidden, Message: "Ticket has not been paid"}
	ErrRoomNotFound     = &Violation{Kind: KindNotFound, Message: "Room not found"}
	ErrRoomFull         = &Violation{Kind: KindForbidden, Message: "Room is full"}
)

// CheckHotelAccess returns nil when the ticket is paid, in person and includes
// a hotel. Checks run in a fixed order and the first failure is returned.
func CheckHotelAccess(enrollment *model.Enrollment, ticket *model.Ticket, ticketType *model.TicketType) error {
	switch {
	case enrollment == nil:
		return ErrNoEnrollment
	case ticket == nil:
		return ErrNoTicket
	case ticketType == nil:
		return ErrNoTicketType
	case ticketType.IsRemote:
		return ErrRemoteTicket
	case !ticketType.IncludesHotel:
		return ErrHotelNotIncluded
	case !ticket.IsPaid():
		return ErrTicketNotPaid
	}
	return nil
}

// CheckRoomCapacity fails when occupied has already reached the room capacity.
func CheckRoomCapacity(room *model.Room, occupied int64) error {
	if room == nil {
		return ErrRoomNotFound
	}
	if occupied >= int64(room.Capacity) {
		return ErrRoomFull
	}
	return nil
}

// AsViolation unwraps err to a *Violation if it carries one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsForbidden reports whether err is a KindForbidden violation.
func IsForbidden(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Kind == KindForbidden
}

// IsNotFound reports whether err is a KindNotFound violation.
func IsNotFound(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Kind == KindNotFound
}

// ToAppError maps violations to 404/403, passes AppErrors through and turns
// anything else into a 500 described by op.
func ToAppError(err error, op string) *apperrors.AppError {
	if v, ok := AsViolation(err); ok {
		switch v.Kind {
		case KindNotFound:
			return apperrors.New(apperrors.CodeNotFound, v.Message, http.StatusNotFound)
		case KindForbidden:
			return apperrors.Forbidden(v.Message)
		}
	}
	if apperrors.IsAppError(err) {
		return apperrors.AsAppError(err)
	}
	return apperrors.Internal(fmt.Sprintf("Failed to %s", op), err)
}
