package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	"github.com/relaxity/RLX-BookingService/internal/service/schedule/models"
)

// Service сервис управления недельным расписанием мастера
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TxManager
	cache        CacheInvalidator
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
// cache может быть nil, если кэширование выключено
func NewService(scheduleRepo ScheduleRepository, txManager TxManager, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		cache:        cache,
		logger:       logger,
	}
}

// GetByMaster получает недельное расписание мастера
func (s *Service) GetByMaster(ctx context.Context, masterID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetByMaster: fetching schedule for master=%d", masterID)

	schedule, err := s.scheduleRepo.GetByMaster(ctx, masterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetByMaster: schedule for master=%d not found", masterID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetByMaster: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetByMaster - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Update полностью заменяет недельное расписание мастера
// Расписание валидируется целиком до записи; после записи кэш сбрасывается
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for master=%d, %d entries", req.MasterID, len(req.Entries))

	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	entries, err := req.ToDomainEntries()
	if err != nil {
		s.logger.Warn("Update: invalid schedule payload for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	weekly := &domain.WeeklySchedule{
		MasterID: req.MasterID,
		Entries:  entries,
	}

	if err := weekly.Validate(); err != nil {
		s.logger.Warn("Update: schedule validation failed for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// Удаление старых записей и вставка новых идут в одной транзакции:
	// сбой на любой вставке не должен оставить мастера без расписания
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceForMaster(txCtx, req.MasterID, entries)
	})
	if err != nil {
		s.logger.Error("Update: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, req.MasterID)
	}

	s.logger.Info("Update: schedule for master=%d replaced", req.MasterID)
	return models.FromDomainSchedule(weekly), nil
}
