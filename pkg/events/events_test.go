package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"drivent/pkg/config"
	"drivent/pkg/kafka"
	"drivent/pkg/logger"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
}

func (p *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	rec := &recordingProducer{}
	p := &KafkaPublisher{bookings: rec, source: "bookings"}
	ctx := logger.ContextWithRequestID(context.Background(), "req-42")

	event := BookingEvent{BookingID: "b1", UserID: "u1", RoomID: "r1", OccurredAt: time.Now()}
	if err := p.BookingCreated(ctx, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(rec.messages))
	}
	msg := rec.messages[0]
	if msg.Key != "b1" || msg.EventType() != TypeBookingCreated {
		t.Errorf("unexpected message key=%s type=%s", msg.Key, msg.EventType())
	}
	if msg.CorrelationID() != "req-42" || msg.Headers[kafka.HeaderSource] != "bookings" {
		t.Errorf("unexpected headers %v", msg.Headers)
	}

	var decoded BookingEvent
	if err := msg.Decode(&decoded); err != nil || decoded.RoomID != "r1" {
		t.Errorf("payload = %+v, err = %v", decoded, err)
	}
}

func TestKafkaPublisher_TicketReserved(t *testing.T) {
	rec := &recordingProducer{err: errors.New("broker down")}
	p := &KafkaPublisher{tickets: rec, source: "tickets"}

	err := p.TicketReserved(context.Background(), TicketEvent{TicketID: "t1", Status: "RESERVED"})
	if err == nil {
		t.Fatal("expected producer error to surface")
	}
	if rec.messages[0].EventType() != TypeTicketReserved {
		t.Errorf("event type = %s", rec.messages[0].EventType())
	}
}

func TestKafkaPublisher_MissingProducer(t *testing.T) {
	p := NewKafkaPublisher(nil, nil, "hotels")
	if err := p.BookingUpdated(context.Background(), BookingEvent{BookingID: "b1"}); err == nil {
		t.Error("expected error without a bookings producer")
	}
}

func TestNoop(t *testing.T) {
	if err := Noop().BookingCreated(context.Background(), BookingEvent{}); err != nil {
		t.Errorf("Noop returned %v", err)
	}
}

func TestFromConfig_KafkaDisabled(t *testing.T) {
	cfg := &config.Config{Log: logger.New(logger.Config{Level: "error"})}

	pub, closeFn, err := FromConfig(cfg, "bookings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := pub.(noopPublisher); !ok {
		t.Errorf("expected noop publisher, got %T", pub)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close returned %v", err)
	}
}
