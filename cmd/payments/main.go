package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivent/internal/payments"
	ticketRepository "drivent/internal/tickets/repository"
	"drivent/pkg/config"
	"drivent/pkg/kafka"
	kafka_config "drivent/pkg/kafka/config"
	kafka_middleware "drivent/pkg/kafka/middleware"
)

const (
	ServiceName     = "payments"
	metricsInterval = time.Minute
)

func main() {
	cfg := config.Load(ServiceName)
	if !cfg.KafkaEnabled {
		cfg.Log.Fatal("Payments consumer requires Kafka, set KAFKA_ENABLED=true")
	}
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	handler := payments.NewHandler(ticketRepository.NewMongoTicketRepository(cfg), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.PaymentEventsTopic, cfg.PaymentConsumerGroup, cfg.PaymentEventsDLQ, handler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create payments consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	consumer.Use(metrics.ConsumerMiddleware())
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reportMetrics(ctx, cfg, metrics)

	cfg.Log.Info("Payments consumer started",
		"topic", cfg.PaymentEventsTopic,
		"group", cfg.PaymentConsumerGroup,
		"dlq", cfg.PaymentEventsDLQ,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Payments consumer stopped unexpectedly", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close payments consumer", "error", err)
	}
	metrics.Log(cfg.Log)
	cfg.Log.Info("Payments consumer shut down")
}

func reportMetrics(ctx context.Context, cfg *config.Config, metrics *kafka_middleware.Metrics) {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.Log(cfg.Log)
		}
	}
}
