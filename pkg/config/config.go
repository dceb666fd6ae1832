package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"drivent/pkg/client"
	"drivent/pkg/logger"
)

var mongoURIRegex = regexp.MustCompile(`^mongodb(\+srv)?://`)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	KafkaEnabled         bool
	BookingEventsTopic   string
	TicketEventsTopic    string
	PaymentEventsTopic   string
	PaymentConsumerGroup string
	PaymentEventsDLQ     string

	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitIdleTTL time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RoomLockTTL time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		TokenTTL:  getEnvDuration(EnvTokenTTL, DefaultTokenTTL),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),
		CacheTTL:      getEnvDuration(EnvCacheTTL, DefaultCacheTTL),

		KafkaEnabled:         getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		BookingEventsTopic:   getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),
		TicketEventsTopic:    getEnvStr(EnvTicketEventsTopic, DefaultTicketEventsTopic),
		PaymentEventsTopic:   getEnvStr(EnvPaymentEventsTopic, DefaultPaymentEventsTopic),
		PaymentConsumerGroup: getEnvStr(EnvPaymentConsumerGrp, DefaultPaymentConsumerGroup),
		PaymentEventsDLQ:     getEnvStr(EnvPaymentEventsDLQ, DefaultPaymentEventsDLQ),

		RateLimitRPS:     getEnvFloat(EnvRateLimitRPS, DefaultRateLimitRPS),
		RateLimitBurst:   getEnvNum(EnvRateLimitBurst, DefaultRateLimitBurst),
		RateLimitIdleTTL: getEnvDuration(EnvRateLimitIdleTTL, DefaultRateLimitIdleTTL),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RoomLockTTL: getEnvDuration(EnvRoomLockTTL, DefaultRoomLockTTL),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

// problems collects validation failures so Validate can report all of them at once.
type problems []string

func (p *problems) addf(bad bool, format string, args ...any) {
	if bad {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Configuration validation failed:\n")
	for i, msg := range p {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(b.String())
}

func (cfg *Config) Validate() error {
	var p problems

	port, err := strconv.Atoi(cfg.Port)
	p.addf(err != nil || port < 1 || port > 65535, "Port must be between 1 and 65535, got: %s", cfg.Port)

	switch {
	case cfg.MongoURI == "":
		p.addf(true, "MongoURI cannot be empty")
	case !mongoURIRegex.MatchString(cfg.MongoURI):
		p.addf(true, "MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI))
	}
	p.addf(cfg.MongoDatabaseName == "", "MongoDatabaseName cannot be empty")
	p.addf(len(cfg.JWTSecret) < 16, "%s must be set and at least 16 characters long", EnvJWTSecret)

	p.addf(cfg.RedisAddr == "", "RedisAddr cannot be empty")
	p.addf(cfg.RedisDB < 0, "RedisDB cannot be negative, got: %d", cfg.RedisDB)

	if cfg.KafkaEnabled {
		p.addf(cfg.BookingEventsTopic == "" || cfg.TicketEventsTopic == "" || cfg.PaymentEventsTopic == "",
			"Kafka topics cannot be empty when Kafka is enabled")
		p.addf(cfg.PaymentConsumerGroup == "", "PaymentConsumerGroup cannot be empty when Kafka is enabled")
	}

	p.addf(cfg.RateLimitRPS <= 0, "RateLimitRPS must be positive, got: %v", cfg.RateLimitRPS)
	p.addf(cfg.RateLimitBurst <= 0, "RateLimitBurst must be positive, got: %d", cfg.RateLimitBurst)
	p.addf(cfg.RoomLockTTL > 0 && cfg.RoomLockTTL <= cfg.RequestTimeout,
		"RoomLockTTL must exceed RequestTimeout (%s), got: %s", cfg.RequestTimeout, cfg.RoomLockTTL)
	p.addf(cfg.MaxRequestSize <= 0, "MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize)

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout": cfg.MongoConnTimeout,
		"TokenTTL":         cfg.TokenTTL,
		"CacheTTL":         cfg.CacheTTL,
		"RateLimitIdleTTL": cfg.RateLimitIdleTTL,
		"RequestTimeout":   cfg.RequestTimeout,
		"IdempotencyTTL":   cfg.IdempotencyTTL,
		"ReadTimeout":      cfg.ReadTimeout,
		"WriteTimeout":     cfg.WriteTimeout,
		"IdleTimeout":      cfg.IdleTimeout,
		"ShutdownTimeout":  cfg.ShutdownTimeout,
		"RoomLockTTL":      cfg.RoomLockTTL,
	} {
		p.addf(d <= 0, "%s must be positive, got: %s", name, d)
	}

	return p.err()
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"token_ttl", cfg.TokenTTL,
		"redis_addr", cfg.RedisAddr,
		"redis_db", cfg.RedisDB,
		"cache_ttl", cfg.CacheTTL,
		"kafka_enabled", cfg.KafkaEnabled,
		"booking_events_topic", cfg.BookingEventsTopic,
		"ticket_events_topic", cfg.TicketEventsTopic,
		"payment_events_topic", cfg.PaymentEventsTopic,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"room_lock_ttl", cfg.RoomLockTTL,
	)
}

var mongoCredentials = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)

func redactMongoURI(uri string) string {
	return mongoCredentials.ReplaceAllString(uri, "${1}***:***@")
}

// lookupEnv returns the parsed value of key, or fallback when it is unset or does not parse.
func lookupEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvStr(key, fallback string) string {
	return lookupEnv(key, fallback, func(s string) (string, error) { return s, nil })
}

func getEnvNum(key string, fallback int) int { return lookupEnv(key, fallback, strconv.Atoi) }

func getEnvBool(key string, fallback bool) bool { return lookupEnv(key, fallback, strconv.ParseBool) }

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	return lookupEnv(key, fallback, time.ParseDuration)
}

func getEnvFloat(key string, fallback float64) float64 {
	return lookupEnv(key, fallback, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
