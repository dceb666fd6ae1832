package handler

import (
	"net/http"

	"drivent/internal/bookings/service"
	"drivent/pkg/auth"
	apperrors "drivent/pkg/errors"
	httputil "drivent/pkg/http"
	"drivent/pkg/logger"
	"drivent/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "Get", apperrors.Unauthorized("Authentication required"))
		return
	}

	booking, err := h.service.GetByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "Get", err)
		return
	}

	if err := httputil.WriteOK(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteOK", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	resp, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteOK(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteOK", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "Update", apperrors.Unauthorized("Authentication required"))
		return
	}

	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, ps.ByName("bookingId"), &req)
	if err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	if err := httputil.WriteOK(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteOK", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.WithContext(r.Context()).Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/booking", h.Get)
	router.POST("/booking", h.Create)
	router.PUT("/booking/:bookingId", h.Update)
}
