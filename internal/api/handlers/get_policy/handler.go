package get_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	policyService "github.com/relaxity/RLX-BookingService/internal/service/policy"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/policy
// Для мастера без настроек возвращается политика по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/policy - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	policy, err := h.service.GetByMaster(r.Context(), masterID)
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/policy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /masters/{id}/policy - Failed: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/policy - Retrieved policy for master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
