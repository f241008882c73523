package check_availability

import (
	"context"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleReader интерфейс чтения недельного расписания мастера
type ScheduleReader interface {
	GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByMaster(ctx context.Context, masterID int64) (*domain.BookingPolicy, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetMaster(ctx context.Context, masterID int64) (*catalog.Master, error)
	GetService(ctx context.Context, masterID, serviceID int64) (*catalog.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
