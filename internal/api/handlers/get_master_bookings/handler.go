package get_master_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	"github.com/relaxity/RLX-BookingService/internal/api/middleware"
	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/internal/service/bookings"
	"github.com/relaxity/RLX-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/bookings
// Query params: startDate, endDate, status, includeInactive (all optional)
// Мастер видит только собственные бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/bookings - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	requestorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if requestorID != masterID {
		h.logger.Warn("GET /masters/{id}/bookings - Access denied: master_id=%d, requestor=%d",
			masterID, requestorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetMasterBookingsRequest{
		MasterID: masterID,
	}

	query := r.URL.Query()

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.GetMasterBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/bookings - Invalid filter: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /masters/{id}/bookings - Failed: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/bookings - Retrieved %d bookings for master_id=%d",
		len(result.Bookings), masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
