package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.RequestorID <= 0 {
		return fmt.Errorf("%w: requestorID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid new start time: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что новая дата попадает в горизонт бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(requestDate, now) {
		return ErrPastDateRequested
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, time.UTC)

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
