package policy

import (
	"context"

	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByMaster(ctx context.Context, masterID int64) (*domain.BookingPolicy, error)
	Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
