package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"drivent/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "drivent:idempotency:"

// RedisIdempotencyStore shares cached responses between service replicas.
// Entries expire through Redis TTLs, so Stop has nothing to release.
type RedisIdempotencyStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
	log     *logger.Logger
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		rdb:     rdb,
		ttl:     ttl,
		timeout: 500 * time.Millisecond,
		log:     log,
	}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("Idempotency lookup failed", "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn("Discarding unreadable idempotency entry", "error", err)
		return nil, false
	}
	return &cached, true
}

// Set runs detached from ctx's cancellation so a response that was already sent still gets stored.
func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	response.StoredAt = time.Now()
	raw, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("Failed to encode idempotency entry", "error", err)
		return
	}
	if err := s.rdb.Set(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("Failed to store idempotency entry", "error", err)
	}
}

func (s *RedisIdempotencyStore) Stop() {}
