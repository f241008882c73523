package get_slots_range

import (
	"fmt"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to date is before from date", ErrInvalidRange)
	}

	days := rangeDays(req.From, req.To)
	if days > domain.MaxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxRangeDays)
	}

	return nil
}

// rangeDays возвращает число календарных дней в диапазоне включительно
func rangeDays(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours()/24) + 1
}
