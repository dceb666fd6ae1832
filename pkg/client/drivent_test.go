package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]string
}

func newRecordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestDriventClient_Requests(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(c *DriventClient) (*Response, error)
		wantMethod string
		wantPath   string
		wantBody   map[string]string
	}{
		{"get booking", func(c *DriventClient) (*Response, error) { return c.GetBooking(ctx) }, http.MethodGet, "/booking", nil},
		{"create booking", func(c *DriventClient) (*Response, error) { return c.CreateBooking(ctx, "room-1") }, http.MethodPost, "/booking", map[string]string{"roomId": "room-1"}},
		{"update booking", func(c *DriventClient) (*Response, error) { return c.UpdateBooking(ctx, "b-1", "room-2") }, http.MethodPut, "/booking/b-1", map[string]string{"roomId": "room-2"}},
		{"list hotels", func(c *DriventClient) (*Response, error) { return c.ListHotels(ctx) }, http.MethodGet, "/hotels", nil},
		{"get hotel", func(c *DriventClient) (*Response, error) { return c.GetHotel(ctx, "h-1") }, http.MethodGet, "/hotels/h-1", nil},
		{"ticket types", func(c *DriventClient) (*Response, error) { return c.ListTicketTypes(ctx) }, http.MethodGet, "/tickets/types", nil},
		{"get ticket", func(c *DriventClient) (*Response, error) { return c.GetTicket(ctx) }, http.MethodGet, "/tickets", nil},
		{"reserve ticket", func(c *DriventClient) (*Response, error) { return c.ReserveTicket(ctx, "tt-1") }, http.MethodPost, "/tickets", map[string]string{"ticketTypeId": "tt-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := newRecordingServer(t, http.StatusOK, `{}`)
			c := NewDriventClient(srv.URL, "secret-token")

			resp, err := tt.call(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
			if rec.method != tt.wantMethod || rec.path != tt.wantPath {
				t.Errorf("got %s %s, want %s %s", rec.method, rec.path, tt.wantMethod, tt.wantPath)
			}
			if rec.auth != "Bearer secret-token" {
				t.Errorf("Authorization = %q", rec.auth)
			}
			for k, v := range tt.wantBody {
				if rec.body[k] != v {
					t.Errorf("body[%s] = %q, want %q", k, rec.body[k], v)
				}
			}
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusForbidden, `{"code":"FORBIDDEN","message":"Room is full"}`)
	resp, err := NewHttpClient(srv.URL).GET(context.Background(), "/booking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := GetErrorMessage(resp); got != "Room is full" {
		t.Errorf("GetErrorMessage = %q", got)
	}
}

func TestWaitForHealthy(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{"status":"ok"}`)
	if err := NewHttpClient(srv.URL).WaitForHealthy(context.Background(), time.Second); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
}

func TestWithHeader_DoesNotLeakIntoParent(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Idempotency-Key"))
	}))
	t.Cleanup(srv.Close)

	base := NewHttpClient(srv.URL)
	keyed := base.WithHeader("Idempotency-Key", "k-1")

	if _, err := keyed.POST(context.Background(), "/tickets", map[string]string{}); err != nil {
		t.Fatal(err)
	}
	if _, err := base.POST(context.Background(), "/tickets", map[string]string{}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "k-1" || got[1] != "" {
		t.Errorf("headers seen = %q", got)
	}
}

func TestWaitForHealthy_GivesUp(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusServiceUnavailable, `{}`)
	if err := NewHttpClient(srv.URL).WaitForHealthy(context.Background(), 50*time.Millisecond); err == nil {
		t.Fatal("expected an error for an unhealthy service")
	}
}
