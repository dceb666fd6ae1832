package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"
	EnvTokenTTL  = "TOKEN_TTL"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvCacheTTL      = "CACHE_TTL"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
	EnvTicketEventsTopic  = "TICKET_EVENTS_TOPIC"
	EnvPaymentEventsTopic = "PAYMENT_EVENTS_TOPIC"
	EnvPaymentConsumerGrp = "PAYMENT_CONSUMER_GROUP"
	EnvPaymentEventsDLQ   = "PAYMENT_EVENTS_DLQ_TOPIC"

	EnvRateLimitRPS     = "RATE_LIMIT_RPS"
	EnvRateLimitBurst   = "RATE_LIMIT_BURST"
	EnvRateLimitIdleTTL = "RATE_LIMIT_IDLE_TTL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRoomLockTTL = "ROOM_LOCK_TTL"
)
