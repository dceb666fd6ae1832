package handler

import (
	"net/http"

	"drivent/internal/tickets/service"
	"drivent/pkg/auth"
	apperrors "drivent/pkg/errors"
	httputil "drivent/pkg/http"
	"drivent/pkg/logger"
	"drivent/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TicketHandler struct {
	service service.TicketService
	log     *logger.Logger
}

func NewTicketHandler(service service.TicketService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log,
	}
}

func (h *TicketHandler) ListTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		h.writeError(w, r, "ListTypes", err)
		return
	}

	if err := httputil.WriteOK(w, types); err != nil {
		h.log.Error("failed to write success response", "handler", "ListTypes", "operation", "WriteOK", "error", err)
	}
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "Get", apperrors.Unauthorized("Authentication required"))
		return
	}

	ticket, err := h.service.GetForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "Get", err)
		return
	}

	if err := httputil.WriteOK(w, ticket); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteOK", "error", err)
	}
}

func (h *TicketHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "Reserve", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.TicketRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Reserve", err)
		return
	}

	ticket, err := h.service.Reserve(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, r, "Reserve", err)
		return
	}

	if err := httputil.WriteCreated(w, ticket); err != nil {
		h.log.Error("failed to write created response", "handler", "Reserve", "operation", "WriteCreated", "error", err)
	}
}

func (h *TicketHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.WithContext(r.Context()).Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *TicketHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/tickets/types", h.ListTypes)
	router.GET("/tickets", h.Get)
	router.POST("/tickets", h.Reserve)
}
