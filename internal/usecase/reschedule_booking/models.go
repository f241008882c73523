package reschedule_booking

import (
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request входные данные для переноса бронирования
type Request struct {
	BookingID    int64
	RequestorID  int64 // ID клиента или мастера, инициировавшего перенос
	NewDate      time.Time
	NewStartTime types.TimeString
}

// Response результат переноса: новое бронирование и ссылка на старое
type Response struct {
	ID              int64                `json:"id"`
	PreviousID      int64                `json:"previous_id"`
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
	CreatedAt       time.Time            `json:"created_at"`
}
