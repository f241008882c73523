package models

import (
	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// UpdatePolicyRequest запрос на обновление политики бронирования
type UpdatePolicyRequest struct {
	MasterID           int64 `json:"masterId"`
	MinLeadTimeMinutes int   `json:"minLeadTimeMinutes" validate:"min=0,max=10080"`
	AdvanceBookingDays int   `json:"advanceBookingDays" validate:"min=0,max=365"`
}

// ToDomainPolicy конвертирует запрос в domain модель
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		MasterID:           r.MasterID,
		MinLeadTimeMinutes: r.MinLeadTimeMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
	}
}

// PolicyResponse политика бронирования мастера
type PolicyResponse struct {
	MasterID           int64 `json:"masterId"`
	MinLeadTimeMinutes int   `json:"minLeadTimeMinutes"`
	AdvanceBookingDays int   `json:"advanceBookingDays"`
	IsDefault          bool  `json:"isDefault"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		MasterID:           p.MasterID,
		MinLeadTimeMinutes: p.MinLeadTimeMinutes,
		AdvanceBookingDays: p.AdvanceBookingDays,
		IsDefault:          isDefault,
	}
}
