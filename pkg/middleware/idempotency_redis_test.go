package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"drivent/pkg/auth"
	"drivent/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisIdempotencyStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisIdempotencyStore(rdb, time.Minute, logger.Discard())

	calls := 0
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"t1","status":"RESERVED"}`))
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc")
		req = req.WithContext(auth.ContextWithUserID(req.Context(), "u1"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	send()
	replay := send()

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if replay.Code != http.StatusCreated || !strings.Contains(replay.Body.String(), "RESERVED") {
		t.Errorf("unexpected replay %d %s", replay.Code, replay.Body.String())
	}
	if replay.Header().Get("Content-Type") != "application/json" {
		t.Error("replay lost headers")
	}

	key := idempotencyKeyPrefix + "u1|POST|/tickets|abc"
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected entry with TTL, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	send()
	if calls != 2 {
		t.Errorf("expired entry must not be replayed, calls=%d", calls)
	}
}

func TestRedisIdempotencyStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	store := NewRedisIdempotencyStore(rdb, time.Minute, logger.Discard())
	mr.Close()

	ctx := context.Background()
	store.Set(ctx, "k", &CachedResponse{StatusCode: 200})
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expected a miss when Redis is down")
	}
}
