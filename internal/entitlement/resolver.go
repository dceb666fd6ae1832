package entitlement

import (
	"context"
	"errors"
	"fmt"

	enrollmentserrors "drivent/internal/enrollments/errors"
	ticketserrors "drivent/internal/tickets/errors"
	"drivent/pkg/model"
)

type EnrollmentFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.Enrollment, error)
}

type TicketFinder interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID string) (*model.Ticket, error)
	FindTypeByID(ctx context.Context, id string) (*model.TicketType, error)
}

// Access is what a successful hotel access check resolved for the user.
type Access struct {
	Enrollment *model.Enrollment
	Ticket     *model.Ticket
}

// Resolver loads the user's enrollment, ticket and ticket type and runs CheckHotelAccess.
type Resolver struct {
	enrollments EnrollmentFinder
	tickets     TicketFinder
}

func NewResolver(enrollments EnrollmentFinder, tickets TicketFinder) *Resolver {
	return &Resolver{
		enrollments: enrollments,
		tickets:     tickets,
	}
}

// HotelAccess returns a *Violation when the user is not entitled, or a wrapped
// storage error when a lookup fails.
func (r *Resolver) HotelAccess(ctx context.Context, userID string) (*Access, error) {
	enrollment, err := r.enrollments.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, enrollmentserrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, CheckHotelAccess(nil, nil, nil)
	}

	ticket, err := r.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil && !errors.Is(err, ticketserrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if ticket == nil {
		return nil, CheckHotelAccess(enrollment, nil, nil)
	}

	ticketType, err := r.tickets.FindTypeByID(ctx, ticket.TicketTypeID)
	if err != nil && !errors.Is(err, ticketserrors.ErrTypeNotFound) {
		return nil, fmt.Errorf("failed to load ticket type: %w", err)
	}

	if err := CheckHotelAccess(enrollment, ticket, ticketType); err != nil {
		return nil, err
	}

	ticket.TicketType = ticketType
	return &Access{Enrollment: enrollment, Ticket: ticket}, nil
}
