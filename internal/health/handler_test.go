package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"drivent/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

func serve(h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	router := httprouter.New()
	h.RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealth(t *testing.T) {
	failing := Check{Name: "mongo", Ping: func(context.Context) error { return errors.New("down") }}
	rec, body := serve(NewHealthHandler(logger.Discard(), failing), "/health")
	if rec.Code != http.StatusOK || body.Status != "ok" {
		t.Errorf("liveness must not depend on dependencies, got %d %+v", rec.Code, body)
	}
}

func TestReady(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mongoOK := Check{Name: "mongo", Ping: func(context.Context) error { return nil }}

	rec, body := serve(NewHealthHandler(logger.Discard(), mongoOK, RedisCheck(rdb)), "/ready")
	if rec.Code != http.StatusOK || body.Dependencies["redis"] != "ok" || body.Dependencies["mongo"] != "ok" {
		t.Fatalf("expected ready, got %d %+v", rec.Code, body)
	}

	mr.Close()
	rec, body = serve(NewHealthHandler(logger.Discard(), mongoOK, RedisCheck(rdb)), "/ready")
	if rec.Code != http.StatusServiceUnavailable || body.Dependencies["redis"] != "error" {
		t.Errorf("expected redis failure to surface, got %d %+v", rec.Code, body)
	}
	if body.Dependencies["mongo"] != "ok" {
		t.Errorf("healthy dependencies still reported ok, got %+v", body)
	}
}
