package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"drivent/pkg/auth"
)

const DefaultIdempotencyHeader = "Idempotency-Key"

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool)
	Set(ctx context.Context, key string, response *CachedResponse)
	Stop()
}

type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	StoredAt   time.Time
}

// Idempotency replays the first successful response to a POST carrying the same
// key from the same user. Concurrent retries wait for the first one to finish.
func Idempotency(store IdempotencyStore, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = DefaultIdempotencyHeader
	}
	inFlight := newKeyedMutex()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := idempotencyKey(r, headerName)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			unlock := inFlight.lock(key)
			defer unlock()

			if cached, ok := store.Get(r.Context(), key); ok {
				cached.replay(w)
				return
			}

			rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				store.Set(r.Context(), key, &CachedResponse{
					StatusCode: rec.status,
					Headers:    w.Header().Clone(),
					Body:       rec.body.Bytes(),
				})
			}
		})
	}
}

// idempotencyKey scopes the client key to the caller and route so two users
// cannot replay each other's responses. Only POST is covered.
func idempotencyKey(r *http.Request, headerName string) string {
	clientKey := r.Header.Get(headerName)
	if clientKey == "" || r.Method != http.MethodPost {
		return ""
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	return userID + "|" + r.Method + "|" + r.URL.Path + "|" + clientKey
}

func (c *CachedResponse) replay(w http.ResponseWriter) {
	for name, values := range c.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(c.StatusCode)
	_, _ = w.Write(c.Body)
}

type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
