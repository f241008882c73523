package domain

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Slot represents a candidate bookable interval, computed on read and never persisted
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы пересекаются только при строгом наложении: граничащие интервалы не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// OverlapsBooking проверяет пересечение интервала [start, end) с активным бронированием
// Неактивные бронирования интервал не блокируют
func OverlapsBooking(start, end types.TimeString, booking *Booking) bool {
	if !booking.IsActive() {
		return false
	}

	bookingEnd, err := booking.EndTime()
	if err != nil {
		return false
	}

	return Overlaps(start, end, booking.StartTime, bookingEnd)
}
