package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	checkAvailability "github.com/relaxity/RLX-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidMasterID  = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgMissingTime      = "время обязательно"
	msgInvalidDateTime  = "некорректный формат даты или времени"
	msgMasterNotFound   = "мастер не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), time (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := r.URL.Query().Get("time")
	if timeStr == "" {
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(masterID, serviceID, dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/availability - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /masters/{id}/availability - Service not found: master_id=%d, service_id=%d",
				masterID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /masters/{id}/availability - Failed to check: master_id=%d, service_id=%d, error=%v",
				masterID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/availability - Checked: master_id=%d, date=%s, time=%s, available=%t",
		masterID, dateStr, timeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
