package middleware

import (
	"context"
	"sync"
	"time"
)

const minSweepInterval = time.Minute

// InMemoryIdempotencyStore is the single-replica fallback used when Redis is not configured.
type InMemoryIdempotencyStore struct {
	mu      sync.RWMutex
	entries map[string]*CachedResponse
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		entries: make(map[string]*CachedResponse),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.sweep(max(ttl, minSweepInterval))
	return s
}

func (s *InMemoryIdempotencyStore) Get(_ context.Context, key string) (*CachedResponse, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.expired(entry) {
		return nil, false
	}
	return entry, true
}

func (s *InMemoryIdempotencyStore) Set(_ context.Context, key string, response *CachedResponse) {
	response.StoredAt = s.now()

	s.mu.Lock()
	s.entries[key] = response
	s.mu.Unlock()
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *InMemoryIdempotencyStore) expired(entry *CachedResponse) bool {
	return s.now().Sub(entry.StoredAt) > s.ttl
}

func (s *InMemoryIdempotencyStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if s.expired(entry) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
