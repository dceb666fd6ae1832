package handler

import (
	"net/http"

	"drivent/internal/hotels/service"
	"drivent/pkg/auth"
	apperrors "drivent/pkg/errors"
	httputil "drivent/pkg/http"
	"drivent/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HotelHandler struct {
	service service.HotelService
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log,
	}
}

func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "List", apperrors.Unauthorized("Authentication required"))
		return
	}

	hotels, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "List", err)
		return
	}

	if err := httputil.WriteOK(w, hotels); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteOK", "error", err)
	}
}

func (h *HotelHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "GetByID", apperrors.Unauthorized("Authentication required"))
		return
	}

	hotel, err := h.service.GetWithRooms(r.Context(), userID, ps.ByName("hotelId"))
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	if err := httputil.WriteOK(w, hotel); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteOK", "error", err)
	}
}

func (h *HotelHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.WithContext(r.Context()).Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/hotels", h.List)
	router.GET("/hotels/:hotelId", h.GetByID)
}
