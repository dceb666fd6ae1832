package service

import (
	"context"
	"errors"
	"time"

	enrollmentserrors "drivent/internal/enrollments/errors"
	ticketserrors "drivent/internal/tickets/errors"
	"drivent/internal/tickets/repository"
	"drivent/internal/tickets/validator"
	"drivent/pkg/config"
	apperrors "drivent/pkg/errors"
	"drivent/pkg/events"
	"drivent/pkg/model"
	"drivent/pkg/sanitizer"
	"drivent/pkg/validation"
)

type EnrollmentFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.Enrollment, error)
}

type TicketService interface {
	ListTypes(ctx context.Context) ([]*model.TicketType, error)
	GetForUser(ctx context.Context, userID string) (*model.Ticket, error)
	Reserve(ctx context.Context, userID string, req *model.TicketRequest) (*model.Ticket, error)
}

type ticketService struct {
	repo        repository.TicketRepository
	enrollments EnrollmentFinder
	validator   *validator.TicketValidator
	publisher   events.Publisher
	cfg         *config.Config
}

func NewTicketService(
	repo repository.TicketRepository,
	enrollments EnrollmentFinder,
	validator *validator.TicketValidator,
	publisher events.Publisher,
	cfg *config.Config,
) TicketService {
	return &ticketService{
		repo:        repo,
		enrollments: enrollments,
		validator:   validator,
		publisher:   publisher,
		cfg:         cfg,
	}
}

func (s *ticketService) ListTypes(ctx context.Context) ([]*model.TicketType, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list ticket types", "error", err)
		return nil, apperrors.Internal("Failed to retrieve ticket types", err)
	}
	return types, nil
}

func (s *ticketService) GetForUser(ctx context.Context, userID string) (*model.Ticket, error) {
	enrollment, err := s.enrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, ticketserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Ticket")
		}
		s.cfg.Log.Error("Failed to load ticket", "enrollment_id", enrollment.ID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve ticket", err)
	}

	ticketType, err := s.repo.FindTypeByID(ctx, ticket.TicketTypeID)
	if err != nil && !errors.Is(err, ticketserrors.ErrTypeNotFound) {
		s.cfg.Log.Error("Failed to load ticket type", "ticket_type_id", ticket.TicketTypeID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve ticket", err)
	}

	ticket.TicketType = ticketType
	return ticket, nil
}

func (s *ticketService) Reserve(ctx context.Context, userID string, req *model.TicketRequest) (*model.Ticket, error) {
	sanitizer.SanitizeTicketRequest(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Ticket validation failed", "user_id", userID, "error", err)
		return nil, apperrors.InvalidInput("Ticket validation failed").WithDetails(validation.DetailsOf(err))
	}

	enrollment, err := s.enrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticketType, err := s.repo.FindTypeByID(ctx, req.TicketTypeID)
	if err != nil {
		if errors.Is(err, ticketserrors.ErrTypeNotFound) || errors.Is(err, ticketserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Ticket type", req.TicketTypeID)
		}
		s.cfg.Log.Error("Failed to load ticket type", "ticket_type_id", req.TicketTypeID, "error", err)
		return nil, apperrors.Internal("Failed to reserve ticket", err)
	}

	ticket := &model.Ticket{
		TicketTypeID: ticketType.ID,
		EnrollmentID: enrollment.ID,
		Status:       model.TicketStatusReserved,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		if errors.Is(err, ticketserrors.ErrAlreadyExists) {
			return nil, apperrors.Conflict("Enrollment already holds a ticket")
		}
		s.cfg.Log.Error("Failed to create ticket", "enrollment_id", enrollment.ID, "error", err)
		return nil, apperrors.Internal("Failed to reserve ticket", err)
	}
	ticket.TicketType = ticketType

	s.cfg.Log.Info("Ticket reserved",
		"ticket_id", ticket.ID,
		"enrollment_id", enrollment.ID,
		"ticket_type_id", ticketType.ID,
	)

	// The reservation is already stored; a failed publish is logged, not returned.
	if err := s.publisher.TicketReserved(ctx, events.TicketEvent{
		TicketID:     ticket.ID,
		EnrollmentID: ticket.EnrollmentID,
		TicketTypeID: ticket.TicketTypeID,
		Status:       ticket.Status,
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish ticket event", "ticket_id", ticket.ID, "error", err)
	}

	return ticket, nil
}

func (s *ticketService) enrollment(ctx context.Context, userID string) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, enrollmentserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Enrollment")
		}
		s.cfg.Log.Error("Failed to load enrollment", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve enrollment", err)
	}
	return enrollment, nil
}
