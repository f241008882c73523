package check_availability

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request входные данные для проверки доступности слота
type Request struct {
	MasterID  int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
}

// Response результат проверки доступности
type Response struct {
	MasterID  int64            `json:"master_id"`
	ServiceID int64            `json:"service_id"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"start_time"`
	Available bool             `json:"available"`
	Reason    string           `json:"reason,omitempty"`
}
