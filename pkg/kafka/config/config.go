package kafka_config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"drivent/pkg/logger"
)

// Acks values accepted by ProducerConfig.RequiredAcks.
const (
	AcksNone   = 0
	AcksLeader = 1
	AcksAll    = -1
)

var compressions = map[string]bool{"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true}

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
	Async        bool
}

type ConsumerConfig struct {
	// StartOffset is -1 for newest, -2 for oldest.
	StartOffset       int64
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
}

type Config struct {
	Brokers          []string
	Producer         ProducerConfig
	Consumer         ConsumerConfig
	EnableMiddleware bool
}

// Default suits a single local broker.
func Default() *Config {
	return &Config{
		Brokers: []string{"localhost:9092"},
		Producer: ProducerConfig{
			MaxAttempts:  3,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: AcksAll,
			Compression:  "snappy",
		},
		Consumer: ConsumerConfig{
			StartOffset:       -1,
			MinBytes:          1,
			MaxBytes:          10 << 20,
			MaxWait:           500 * time.Millisecond,
			CommitInterval:    time.Second,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    10 * time.Second,
			RebalanceTimeout:  time.Minute,
			MaxRetries:        3,
			RetryBackoff:      200 * time.Millisecond,
		},
		EnableMiddleware: true,
	}
}

// Load overlays KAFKA_* environment variables on Default. Unparseable values are
// reported instead of silently falling back.
func Load() (*Config, error) {
	cfg := Default()
	env := &envReader{}

	env.list(&cfg.Brokers, EnvKafkaBrokers)

	env.int(&cfg.Producer.MaxAttempts, EnvProducerMaxAttempts)
	env.duration(&cfg.Producer.BatchTimeout, EnvProducerBatchTimeout)
	env.int(&cfg.Producer.RequiredAcks, EnvProducerRequireAcks)
	env.str(&cfg.Producer.Compression, EnvProducerCompression)
	env.bool(&cfg.Producer.Async, EnvProducerAsync)

	env.int64(&cfg.Consumer.StartOffset, EnvConsumerStartOffset)
	env.int(&cfg.Consumer.MinBytes, EnvConsumerMinBytes)
	env.int(&cfg.Consumer.MaxBytes, EnvConsumerMaxBytes)
	env.duration(&cfg.Consumer.MaxWait, EnvConsumerMaxWait)
	env.duration(&cfg.Consumer.CommitInterval, EnvConsumerCommitInterval)
	env.duration(&cfg.Consumer.HeartbeatInterval, EnvConsumerHeartbeatInterval)
	env.duration(&cfg.Consumer.SessionTimeout, EnvConsumerSessionTimeout)
	env.duration(&cfg.Consumer.RebalanceTimeout, EnvConsumerRebalanceTimeout)
	env.int(&cfg.Consumer.MaxRetries, EnvConsumerMaxRetries)
	env.duration(&cfg.Consumer.RetryBackoff, EnvConsumerRetryBackoff)

	env.bool(&cfg.EnableMiddleware, EnvEnableMiddleware)

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("kafka configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka configuration: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(len(cfg.Brokers) > 0, "at least one broker is required")
	for i, broker := range cfg.Brokers {
		check(broker != "", "broker %d is empty", i)
	}

	p := cfg.Producer
	check(p.MaxAttempts > 0, "Producer.MaxAttempts must be positive, got %d", p.MaxAttempts)
	check(p.BatchTimeout > 0, "Producer.BatchTimeout must be positive, got %s", p.BatchTimeout)
	check(p.RequiredAcks == AcksNone || p.RequiredAcks == AcksLeader || p.RequiredAcks == AcksAll,
		"Producer.RequiredAcks must be -1, 0 or 1, got %d", p.RequiredAcks)
	check(compressions[p.Compression], "Producer.Compression must be one of none, gzip, snappy, lz4, zstd, got %q", p.Compression)

	c := cfg.Consumer
	check(c.StartOffset >= -2, "Consumer.StartOffset must be -1, -2 or a real offset, got %d", c.StartOffset)
	check(c.MinBytes > 0 && c.MaxBytes >= c.MinBytes, "Consumer byte limits are inconsistent: min %d, max %d", c.MinBytes, c.MaxBytes)
	check(c.MaxRetries >= 0, "Consumer.MaxRetries cannot be negative, got %d", c.MaxRetries)
	check(c.RetryBackoff >= 0, "Consumer.RetryBackoff cannot be negative, got %s", c.RetryBackoff)
	for name, d := range map[string]time.Duration{
		"MaxWait":           c.MaxWait,
		"CommitInterval":    c.CommitInterval,
		"HeartbeatInterval": c.HeartbeatInterval,
		"SessionTimeout":    c.SessionTimeout,
		"RebalanceTimeout":  c.RebalanceTimeout,
	} {
		check(d > 0, "Consumer.%s must be positive, got %s", name, d)
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded",
		"brokers", cfg.Brokers,
		"producer", fmt.Sprintf("%+v", cfg.Producer),
		"consumer", fmt.Sprintf("%+v", cfg.Consumer),
		"enable_middleware", cfg.EnableMiddleware,
	)
}
