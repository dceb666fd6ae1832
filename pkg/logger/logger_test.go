package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "bookings"})

	log.Info("hello", "room_id", "r1")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if record[SERVICE] != "bookings" {
		t.Errorf("expected service attr 'bookings', got %v", record[SERVICE])
	}
	if record["room_id"] != "r1" {
		t.Errorf("expected room_id attr, got %v", record["room_id"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{DEBUG, true, true},
		{INFO, false, true},
		{WARN, false, false},
		{"WARN", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Output: &buf})

			log.Debug("debug-line")
			if got := bytes.Contains(buf.Bytes(), []byte("debug-line")); got != tt.debugSeen {
				t.Errorf("debug visible = %v, want %v", got, tt.debugSeen)
			}
			log.Info("info-line")
			if got := bytes.Contains(buf.Bytes(), []byte("info-line")); got != tt.infoSeen {
				t.Errorf("info visible = %v, want %v", got, tt.infoSeen)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "user-1")
	log.WithContext(ctx).Info("scoped")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record["request_id"] != "req-1" {
		t.Errorf("expected request_id req-1, got %v", record["request_id"])
	}
	if record["user_id"] != "user-1" {
		t.Errorf("expected user_id user-1, got %v", record["user_id"])
	}
}

func TestWithContext_NoValuesReturnsSameLogger(t *testing.T) {
	log := Discard()
	if log.WithContext(context.Background()) != log {
		t.Error("expected the same logger when the context carries no identifiers")
	}
}
