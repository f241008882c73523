package get_policy

import (
	"context"

	"github.com/relaxity/RLX-BookingService/internal/service/policy/models"
)

type PolicyService interface {
	GetByMaster(ctx context.Context, masterID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
