package update_policy

import (
	"github.com/relaxity/RLX-BookingService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	MinLeadTimeMinutes int `json:"minLeadTimeMinutes" validate:"min=0,max=10080"`
	AdvanceBookingDays int `json:"advanceBookingDays" validate:"min=0,max=365"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest(masterID int64) *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		MasterID:           masterID,
		MinLeadTimeMinutes: r.MinLeadTimeMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
	}
}
