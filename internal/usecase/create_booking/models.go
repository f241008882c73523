package create_booking

import (
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request входные данные для создания бронирования
type Request struct {
	MasterID  int64
	ClientID  int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	Notes     *string
}

// Response созданное бронирование
type Response struct {
	ID              int64                `json:"id"`
	MasterID        int64                `json:"master_id"`
	ClientID        int64                `json:"client_id"`
	ServiceID       int64                `json:"service_id"`
	BookingDate     time.Time            `json:"booking_date"`
	StartTime       types.TimeString     `json:"start_time"`
	EndTime         types.TimeString     `json:"end_time"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          domain.BookingStatus `json:"status"`
	ServiceName     string               `json:"service_name"`
	ServicePrice    float64              `json:"service_price"`
	Notes           *string              `json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}
