package get_schedule

import (
	"context"

	"github.com/relaxity/RLX-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetByMaster(ctx context.Context, masterID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
