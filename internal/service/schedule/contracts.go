package schedule

import (
	"context"

	"github.com/relaxity/RLX-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error)
	ReplaceForMaster(ctx context.Context, masterID int64, entries []domain.ScheduleEntry) error
}

// TxManager интерфейс менеджера транзакций
// Замена расписания удаляет и вставляет записи и обязана быть атомарной
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator сбрасывает закэшированное расписание мастера
type CacheInvalidator interface {
	Invalidate(ctx context.Context, masterID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
