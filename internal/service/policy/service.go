package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	"github.com/relaxity/RLX-BookingService/internal/service/policy/models"
)

// Service сервис управления политиками бронирования
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// GetByMaster получает политику бронирования мастера
// Если политика не настроена, возвращается политика по умолчанию
func (s *Service) GetByMaster(ctx context.Context, masterID int64) (*models.PolicyResponse, error) {
	s.logger.Info("GetByMaster: fetching policy for master=%d", masterID)

	if masterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	policy, err := s.policyRepo.GetByMaster(ctx, masterID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return models.FromDomainPolicy(domain.DefaultPolicy(masterID), true), nil
		}
		s.logger.Error("GetByMaster: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: GetByMaster - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy, false), nil
}

// Update создает или обновляет политику бронирования мастера
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating policy for master=%d, leadTime=%d, advanceDays=%d",
		req.MasterID, req.MinLeadTimeMinutes, req.AdvanceBookingDays)

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for master=%d: %v", req.MasterID, err)
		return nil, err
	}

	policy, err := s.policyRepo.Upsert(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("Update: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: policy for master=%d saved", req.MasterID)
	return models.FromDomainPolicy(policy, false), nil
}

func validateRequest(req *models.UpdatePolicyRequest) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if req.MinLeadTimeMinutes < domain.MinLeadTimeMinutes || req.MinLeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: minLeadTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
