package update_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/relaxity/RLX-BookingService/internal/api/handlers"
	"github.com/relaxity/RLX-BookingService/internal/api/middleware"
	policyService "github.com/relaxity/RLX-BookingService/internal/service/policy"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/masters/{masterId}/policy
// Политику меняет только сам мастер
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /masters/{id}/policy - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	requestorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /masters/{id}/policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if requestorID != masterID {
		h.logger.Warn("PUT /masters/{id}/policy - Access denied: master_id=%d, requestor=%d",
			masterID, requestorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /masters/{id}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PUT /masters/{id}/policy - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(masterID))
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("PUT /masters/{id}/policy - Invalid input: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /masters/{id}/policy - Failed: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /masters/{id}/policy - Policy updated for master_id=%d", masterID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
