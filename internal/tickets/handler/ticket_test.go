package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"drivent/pkg/auth"
	apperrors "drivent/pkg/errors"
	"drivent/pkg/logger"
	"drivent/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockTicketService struct {
	listTypesFunc  func(ctx context.Context) ([]*model.TicketType, error)
	getForUserFunc func(ctx context.Context, userID string) (*model.Ticket, error)
	reserveFunc    func(ctx context.Context, userID string, req *model.TicketRequest) (*model.Ticket, error)
}

func (m *mockTicketService) ListTypes(ctx context.Context) ([]*model.TicketType, error) {
	return m.listTypesFunc(ctx)
}

func (m *mockTicketService) GetForUser(ctx context.Context, userID string) (*model.Ticket, error) {
	return m.getForUserFunc(ctx, userID)
}

func (m *mockTicketService) Reserve(ctx context.Context, userID string, req *model.TicketRequest) (*model.Ticket, error) {
	return m.reserveFunc(ctx, userID, req)
}

func serve(svc *mockTicketService, req *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewTicketHandler(svc, logger.Discard()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(auth.ContextWithUserID(req.Context(), "u1"))
}

func TestListTypes(t *testing.T) {
	svc := &mockTicketService{
		listTypesFunc: func(ctx context.Context) ([]*model.TicketType, error) {
			return []*model.TicketType{{ID: "tt1", Name: "Online", IsRemote: true}}, nil
		},
	}

	rec := serve(svc, authed(httptest.NewRequest(http.MethodGet, "/tickets/types", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || len(body) != 1 || body[0]["isRemote"] != true {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestGet(t *testing.T) {
	svc := &mockTicketService{
		getForUserFunc: func(ctx context.Context, userID string) (*model.Ticket, error) {
			if userID != "u1" {
				return nil, apperrors.NotFound("Enrollment")
			}
			return &model.Ticket{ID: "t1", Status: model.TicketStatusReserved, TicketType: &model.TicketType{Name: "Online"}}, nil
		},
	}

	rec := serve(svc, authed(httptest.NewRequest(http.MethodGet, "/tickets", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != model.TicketStatusReserved || body["TicketType"] == nil {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = serve(svc, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing user: status = %d, want 401", rec.Code)
	}
}

func TestReserve(t *testing.T) {
	svc := &mockTicketService{
		reserveFunc: func(ctx context.Context, userID string, req *model.TicketRequest) (*model.Ticket, error) {
			if req.TicketTypeID == "" {
				return nil, apperrors.InvalidInput("Ticket validation failed")
			}
			return &model.Ticket{ID: "t1", TicketTypeID: req.TicketTypeID, Status: model.TicketStatusReserved}, nil
		},
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"ticketTypeId":"507f1f77bcf86cd799439011"}`, http.StatusCreated},
		{"empty body", ``, http.StatusBadRequest},
		{"malformed json", `{"ticketTypeId":`, http.StatusBadRequest},
		{"missing field", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authed(httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(tt.body)))
			rec := serve(svc, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
