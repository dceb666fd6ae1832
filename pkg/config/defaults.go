package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "drivent"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTokenTTL = 24 * time.Hour

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0
	DefaultCacheTTL  = 5 * time.Minute

	DefaultKafkaEnabled         = false
	DefaultBookingEventsTopic   = "drivent.bookings"
	DefaultTicketEventsTopic    = "drivent.tickets"
	DefaultPaymentEventsTopic   = "drivent.payments"
	DefaultPaymentConsumerGroup = "drivent-payments"
	DefaultPaymentEventsDLQ     = "drivent.payments.dlq"

	DefaultRateLimitRPS     = 5.0
	DefaultRateLimitBurst   = 10
	DefaultRateLimitIdleTTL = 10 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRoomLockTTL = 45 * time.Second
)
