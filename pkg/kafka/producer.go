package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	kafka_config "drivent/pkg/kafka/config"
	"drivent/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes to one topic. A failed write is parked on the DLQ topic
// when one is configured.
type Producer struct {
	writer     messageWriter
	dlqWriter  messageWriter
	topic      string
	log        *logger.Logger
	mu         sync.RWMutex
	middleware []Middleware
	closed     bool
}

func NewProducer(cfg *kafka_config.Config, topic, dlqTopic string, log *logger.Logger) (*Producer, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("kafka config is required")
	case len(cfg.Brokers) == 0:
		return nil, errors.New("at least one broker is required")
	case topic == "":
		return nil, errors.New("producer topic is required")
	}

	p := &Producer{writer: newWriter(cfg, topic, log), topic: topic, log: log}
	if dlqTopic != "" {
		p.dlqWriter = newDLQWriter(cfg, dlqTopic, log)
	}
	return p, nil
}

func (p *Producer) Use(mw Middleware) {
	p.mu.Lock()
	p.middleware = append(p.middleware, mw)
	p.mu.Unlock()
}

func (p *Producer) Topic() string { return p.topic }

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	closed, mws := p.closed, p.middleware
	p.mu.RUnlock()

	switch {
	case closed:
		return ErrProducerClosed
	case msg.Key == "":
		return ErrEmptyKey
	case len(msg.Value) == 0:
		return ErrEmptyValue
	}
	msg.Topic = p.topic
	return chain(p.write, mws)(ctx, msg)
}

func (p *Producer) write(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg, msg.Timestamp))
	if err == nil || p.dlqWriter == nil {
		return err
	}
	if dlqErr := p.dlqWriter.WriteMessages(ctx, deadLetter(msg, p.topic, err, nil)); dlqErr != nil {
		return fmt.Errorf("publish to %s: %w (dead letter also failed: %v)", p.topic, err, dlqErr)
	}
	p.log.Warn("Kafka publish failed, message parked on DLQ", "topic", p.topic, "event_id", msg.EventID(), "error", err)
	return err
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for _, w := range []messageWriter{p.writer, p.dlqWriter} {
		if w != nil {
			errs = append(errs, w.Close())
		}
	}
	return errors.Join(errs...)
}
