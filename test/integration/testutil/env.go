package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"drivent/pkg/client"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultHealthCheckTimeout = 30 * time.Second
	DefaultJWTSecret          = "integration-test-secret-key"
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	RedisAddr    string
	BookingsURL  string
	HotelsURL    string
	TicketsURL   string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		JWTSecret:    getEnv("TEST_JWT_SECRET", DefaultJWTSecret),
		RedisAddr:    getEnv("TEST_REDIS_ADDR", "localhost:6379"),
		BookingsURL:  getEnv("TEST_BOOKINGS_URL", "http://localhost:8080"),
		HotelsURL:    getEnv("TEST_HOTELS_URL", "http://localhost:8081"),
		TicketsURL:   getEnv("TEST_TICKETS_URL", "http://localhost:8082"),
	}
}

// Setup connects to Mongo, empties every collection, drops cached catalogue entries
// and waits for serviceURL to report healthy.
func (e *TestEnv) Setup(t *testing.T, serviceURL string) *MongoHelper {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	ctx := context.Background()
	e.flushCache(t)
	if err := client.NewHttpClient(serviceURL).WaitForHealthy(ctx, DefaultHealthCheckTimeout); err != nil {
		t.Fatalf("service at %s not healthy: %v", serviceURL, err)
	}

	t.Cleanup(func() {
		e.flushCache(t)
		mongo.CleanDatabase(t)
		mongo.Close(t)
	})
	return mongo
}

func (e *TestEnv) flushCache(t *testing.T) {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: e.RedisAddr})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	iter := rdb.Scan(ctx, 0, "drivent:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			t.Fatalf("failed to drop cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		t.Fatalf("failed to scan cache keys: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
