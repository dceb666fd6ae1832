package kafka_config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"

	EnvProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"
	EnvProducerAsync        = "KAFKA_PRODUCER_ASYNC"

	EnvConsumerStartOffset       = "KAFKA_CONSUMER_START_OFFSET"
	EnvConsumerMinBytes          = "KAFKA_CONSUMER_MIN_BYTES"
	EnvConsumerMaxBytes          = "KAFKA_CONSUMER_MAX_BYTES"
	EnvConsumerMaxWait           = "KAFKA_CONSUMER_MAX_WAIT"
	EnvConsumerCommitInterval    = "KAFKA_CONSUMER_COMMIT_INTERVAL"
	EnvConsumerHeartbeatInterval = "KAFKA_CONSUMER_HEARTBEAT_INTERVAL"
	EnvConsumerSessionTimeout    = "KAFKA_CONSUMER_SESSION_TIMEOUT"
	EnvConsumerRebalanceTimeout  = "KAFKA_CONSUMER_REBALANCE_TIMEOUT"
	EnvConsumerMaxRetries        = "KAFKA_CONSUMER_MAX_RETRIES"
	EnvConsumerRetryBackoff      = "KAFKA_CONSUMER_RETRY_BACKOFF"
)

// envReader overwrites a field only when its variable is set, and keeps every parse failure.
type envReader struct {
	errs []error
}

func (r *envReader) lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (r *envReader) fail(key, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (r *envReader) str(dst *string, key string) {
	if value, ok := r.lookup(key); ok {
		*dst = value
	}
}

func (r *envReader) list(dst *[]string, key string) {
	value, ok := r.lookup(key)
	if !ok {
		return
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	*dst = parts
}

func (r *envReader) int(dst *int, key string) {
	if value, ok := r.lookup(key); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			r.fail(key, value, err)
			return
		}
		*dst = n
	}
}

func (r *envReader) int64(dst *int64, key string) {
	if value, ok := r.lookup(key); ok {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			r.fail(key, value, err)
			return
		}
		*dst = n
	}
}

func (r *envReader) bool(dst *bool, key string) {
	if value, ok := r.lookup(key); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			r.fail(key, value, err)
			return
		}
		*dst = b
	}
}

func (r *envReader) duration(dst *time.Duration, key string) {
	if value, ok := r.lookup(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			r.fail(key, value, err)
			return
		}
		*dst = d
	}
}
