package get_slots_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	getSlotsRange "github.com/relaxity/RLX-BookingService/internal/usecase/get_slots_range"
)

const (
	msgInvalidMasterID  = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат"
	msgMasterNotFound   = "мастер не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetSlotsRangeUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsRangeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/slots-range
// Query params: serviceId (required), from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots-range - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /masters/{id}/slots-range - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots-range - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /masters/{id}/slots-range - Missing range params")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(masterID, serviceID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/slots-range - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlotsRange.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/slots-range - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getSlotsRange.ErrServiceNotFound):
			h.logger.Warn("GET /masters/{id}/slots-range - Service not found: master_id=%d, service_id=%d",
				masterID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlotsRange.ErrInvalidRange):
			h.logger.Warn("GET /masters/{id}/slots-range - Invalid range: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getSlotsRange.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/slots-range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /masters/{id}/slots-range - Failed to get range: master_id=%d, service_id=%d, error=%v",
				masterID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/slots-range - Range retrieved: master_id=%d, service_id=%d, days=%d",
		masterID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
