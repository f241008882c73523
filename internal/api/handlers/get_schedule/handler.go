package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	scheduleService "github.com/relaxity/RLX-BookingService/internal/service/schedule"
)

const (
	msgInvalidMasterID  = "некорректный ID мастера"
	msgScheduleNotFound = "расписание не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/schedule - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	schedule, err := h.service.GetByMaster(r.Context(), masterID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrScheduleNotFound):
			h.logger.Warn("GET /masters/{id}/schedule - Not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /masters/{id}/schedule - Failed: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/schedule - Retrieved schedule for master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
