package reschedule_booking

import (
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	rescheduleBooking "github.com/relaxity/RLX-BookingService/internal/usecase/reschedule_booking"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate      string `json:"newDate" validate:"required"`      // "2026-09-20"
	NewStartTime string `json:"newStartTime" validate:"required"` // "14:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              int64   `json:"id"`
	PreviousID      int64   `json:"previousId"`
	MasterID        int64   `json:"masterId"`
	ClientID        int64   `json:"clientId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, requestorID int64) (*rescheduleBooking.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:    bookingID,
		RequestorID:  requestorID,
		NewDate:      newDate,
		NewStartTime: newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:              resp.ID,
		PreviousID:      resp.PreviousID,
		MasterID:        resp.MasterID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
