package events

import (
	"context"
	"fmt"
	"time"

	"drivent/pkg/kafka"
	"drivent/pkg/logger"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeTicketReserved   = "ticket.reserved"
	TypePaymentProcessed = "payment.processed"

	SchemaVersion = "1"
)

type BookingEvent struct {
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	RoomID     string    `json:"roomId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type TicketEvent struct {
	TicketID     string    `json:"ticketId"`
	EnrollmentID string    `json:"enrollmentId"`
	TicketTypeID string    `json:"ticketTypeId"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// PaymentProcessed is produced by the payment provider integration and consumed by cmd/payments.
type PaymentProcessed struct {
	TicketID string `json:"ticketId"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, event BookingEvent) error
	BookingUpdated(ctx context.Context, event BookingEvent) error
	TicketReserved(ctx context.Context, event TicketEvent) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	bookings messagePublisher
	tickets  messagePublisher
	source   string
}

// NewKafkaPublisher takes one producer per topic. Either may be nil when the
// service never emits that family of events.
func NewKafkaPublisher(bookings, tickets *kafka.Producer, source string) *KafkaPublisher {
	p := &KafkaPublisher{source: source}
	if bookings != nil {
		p.bookings = bookings
	}
	if tickets != nil {
		p.tickets = tickets
	}
	return p
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, event BookingEvent) error {
	return p.publish(ctx, p.bookings, TypeBookingCreated, event.BookingID, event)
}

func (p *KafkaPublisher) BookingUpdated(ctx context.Context, event BookingEvent) error {
	return p.publish(ctx, p.bookings, TypeBookingUpdated, event.BookingID, event)
}

func (p *KafkaPublisher) TicketReserved(ctx context.Context, event TicketEvent) error {
	return p.publish(ctx, p.tickets, TypeTicketReserved, event.TicketID, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, producer messagePublisher, eventType, key string, payload any) error {
	if producer == nil {
		return fmt.Errorf("no producer configured for %s", eventType)
	}

	msg, err := kafka.NewEvent(eventType, key, payload,
		kafka.WithSchemaVersion(SchemaVersion),
		kafka.WithSource(p.source),
		kafka.WithCorrelationID(logger.RequestIDFromContext(ctx)),
	)
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	return producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// Noop is used when Kafka is disabled.
func Noop() Publisher { return noopPublisher{} }

func (noopPublisher) BookingCreated(context.Context, BookingEvent) error { return nil }
func (noopPublisher) BookingUpdated(context.Context, BookingEvent) error { return nil }
func (noopPublisher) TicketReserved(context.Context, TicketEvent) error  { return nil }
