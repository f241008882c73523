package domain

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByMaster BookingStatus = "cancelled_by_master"
	StatusNoShow            BookingStatus = "no_show"
	StatusRescheduled       BookingStatus = "rescheduled"
)

// Booking represents a reserved service interval of a master
type Booking struct {
	ID              int64
	MasterID        int64
	ClientID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Ссылка на новое бронирование после переноса
	RescheduledToID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive возвращает true, если бронирование блокирует интервал мастера
// Активные статусы: pending, confirmed, in_progress
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// CanBeConfirmed возвращает true, если бронирование может быть подтверждено мастером
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeStarted возвращает true, если мастер может начать выполнение услуги
func (b *Booking) CanBeStarted() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted возвращает true, если услуга может быть завершена
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusInProgress
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeMarkedNoShow возвращает true, если клиенту можно проставить неявку
func (b *Booking) CanBeMarkedNoShow() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled возвращает true, если бронирование можно перенести
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода в новый статус
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusConfirmed:
		return b.CanBeConfirmed()
	case StatusInProgress:
		return b.CanBeStarted()
	case StatusCompleted:
		return b.CanBeCompleted()
	case StatusCancelledByClient, StatusCancelledByMaster:
		return b.CanBeCancelled()
	case StatusNoShow:
		return b.CanBeMarkedNoShow()
	case StatusRescheduled:
		return b.CanBeRescheduled()
	default:
		return false
	}
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByMaster
}

// IsFinished возвращает true, если бронирование в терминальном статусе
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusNoShow ||
		b.Status == StatusRescheduled ||
		b.IsCancelled()
}

// MasterBookingsFilter фильтр для получения бронирований мастера
type MasterBookingsFilter struct {
	MasterID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования
}
