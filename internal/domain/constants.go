package domain

// Default policy values
const (
	DefaultMinLeadTimeMinutes = 120 // 2 hours
	DefaultAdvanceBookingDays = 30
)

// Business validation constants
const (
	MinLeadTimeMinutes = 0
	MaxLeadTimeMinutes = 10080 // 1 week

	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365

	// MaxRangeDays жёсткий потолок окна календарного запроса,
	// действует независимо от политики мастера
	MaxRangeDays = 60

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, блокирующие интервал мастера
// Используются при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses терминальные статусы, не блокирующие интервал
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByMaster,
	StatusNoShow,
	StatusRescheduled,
}
