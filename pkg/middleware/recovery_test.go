package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"drivent/pkg/logger"
)

func discardLogger() *logger.Logger {
	return logger.Discard()
}

func TestRecovery(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	h := RequestLogging(discardLogger())(Recovery(discardLogger())(panicky))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id header")
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusForbidden, "WARN"},
		{http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
		h := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		req := httptest.NewRequest(http.MethodGet, "/hotels", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		h.ServeHTTP(httptest.NewRecorder(), req)

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("status %d: expected one JSON record, got %q", tt.status, buf.String())
		}
		if record["level"] != tt.level || record["request_id"] != "req-7" {
			t.Errorf("status %d: got level %v request_id %v", tt.status, record["level"], record["request_id"])
		}
	}
}
