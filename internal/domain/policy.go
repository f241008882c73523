package domain

import "time"

// BookingPolicy политика бронирования мастера
type BookingPolicy struct {
	ID       int64
	MasterID int64

	// Минимальный интервал между "сейчас" и началом слота
	MinLeadTimeMinutes int

	// Горизонт бронирования в днях, 0 = без ограничения
	AdvanceBookingDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPolicy возвращает политику по умолчанию для мастера без настроек
func DefaultPolicy(masterID int64) *BookingPolicy {
	return &BookingPolicy{
		MasterID:           masterID,
		MinLeadTimeMinutes: DefaultMinLeadTimeMinutes,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit возвращает true, если горизонт бронирования ограничен
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
