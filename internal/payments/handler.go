package payments

import (
	"context"
	"errors"
	"fmt"

	ticketserrors "drivent/internal/tickets/errors"
	"drivent/pkg/events"
	"drivent/pkg/kafka"
	"drivent/pkg/logger"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketMarker interface {
	MarkPaid(ctx context.Context, id string) (*model.Ticket, error)
}

type Handler struct {
	tickets TicketMarker
	log     *logger.Logger
}

func NewHandler(tickets TicketMarker, log *logger.Logger) *Handler {
	return &Handler{
		tickets: tickets,
		log:     log,
	}
}

// Handle marks the ticket of a payment.processed event as PAID. Malformed events
// and unknown tickets are permanent failures; storage errors are retried.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.EventType(); eventType != "" && eventType != events.TypePaymentProcessed {
		h.log.Debug("Ignoring unrelated payment event", "event_type", eventType, "event_id", msg.EventID())
		return nil
	}

	var payment events.PaymentProcessed
	if err := msg.Decode(&payment); err != nil {
		return kafka.NewPermanentError("invalid payment payload", err)
	}
	if !primitive.IsValidObjectID(payment.TicketID) {
		return kafka.NewPermanentError("invalid ticket id", fmt.Errorf("ticketId %q", payment.TicketID))
	}

	ticket, err := h.tickets.MarkPaid(ctx, payment.TicketID)
	if err != nil {
		if errors.Is(err, ticketserrors.ErrNotFound) {
			return kafka.NewPermanentError("ticket not found", err)
		}
		return kafka.NewTransientError("failed to mark ticket paid", err)
	}

	h.log.Info("Ticket marked as paid",
		"ticket_id", ticket.ID,
		"enrollment_id", ticket.EnrollmentID,
		"correlation_id", msg.CorrelationID(),
	)
	return nil
}
