package events

import (
	"errors"
	"fmt"

	"drivent/pkg/config"
	"drivent/pkg/kafka"
	kafka_config "drivent/pkg/kafka/config"
	kafka_middleware "drivent/pkg/kafka/middleware"
)

// FromConfig builds the publisher a service should use. Kafka disabled means Noop.
// The returned func closes every producer it opened.
func FromConfig(cfg *config.Config, source string) (Publisher, func() error, error) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events will not be published", "source", source)
		return Noop(), func() error { return nil }, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, nil, err
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	bookings, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, "", cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("booking events producer: %w", err)
	}
	tickets, err := kafka.NewProducer(kafkaCfg, cfg.TicketEventsTopic, "", cfg.Log)
	if err != nil {
		_ = bookings.Close()
		return nil, nil, fmt.Errorf("ticket events producer: %w", err)
	}

	metrics := kafka_middleware.NewMetrics()
	for _, p := range []*kafka.Producer{bookings, tickets} {
		p.Use(metrics.ProducerMiddleware())
		if kafkaCfg.EnableMiddleware {
			p.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		}
	}

	closeAll := func() error {
		metrics.Log(cfg.Log)
		return errors.Join(bookings.Close(), tickets.Close())
	}
	return NewKafkaPublisher(bookings, tickets, source), closeAll, nil
}
