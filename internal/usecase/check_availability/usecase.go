package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
)

// Причины недоступности слота в ответе
const (
	reasonPastDate       = "date is in the past"
	reasonTooFarInFuture = "date is beyond the booking horizon"
	reasonNotWorkingDay  = "master is not working on this date"
	reasonNotInGrid      = "requested time does not match the slot grid"
	reasonUnavailable    = "slot is not available"
)

// UseCase use case для проверки доступности конкретного слота
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleReader
	policyRepo   PolicyRepository
	catalog      CatalogClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleReader,
	policyRepo PolicyRepository,
	catalog CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		policyRepo:   policyRepo,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет доступность слота на указанное время
// Проверка построена поверх той же нарезки слотов, что и выдача списка,
// поэтому её ответ всегда согласован со списком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: master=%d, service=%d, date=%s, time=%s",
		req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и услугу
	master, err := uc.catalog.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("CheckAvailability: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	service, err := uc.catalog.GetService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Текущее время в часовом поясе мастера
	now := uc.timeProvider.Now().In(domain.LocationOrUTC(master.Timezone))

	// 4. Политика бронирования
	policy, err := uc.policyRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CheckAvailability: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.MasterID)
	}

	// Дата вне окна бронирования - это "недоступно", не ошибка
	if domain.IsDateInPast(req.Date, now) {
		return uc.unavailable(req, reasonPastDate), nil
	}

	if policy.HasAdvanceBookingLimit() && isBeyondHorizon(req.Date, now, policy.AdvanceBookingDays) {
		return uc.unavailable(req, reasonTooFarInFuture), nil
	}

	// 5. Расписание мастера
	schedule, err := uc.scheduleRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return uc.unavailable(req, reasonNotWorkingDay), nil
		}
		uc.logger.Error("CheckAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	entry := schedule.EntryFor(req.Date)
	if entry == nil || !entry.IsWorkingDay {
		return uc.unavailable(req, reasonNotWorkingDay), nil
	}

	// 6. Активные бронирования на эту дату
	filter := domain.MasterBookingsFilter{
		MasterID:        req.MasterID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Ищем запрошенное время среди нарезанных слотов
	slots := domain.GenerateSlots(entry, req.Date, service.DurationMinutes, bookings, now, policy.MinLeadTimeMinutes)

	for _, slot := range slots {
		if slot.StartTime == req.StartTime {
			if slot.Available {
				return &Response{
					MasterID:  req.MasterID,
					ServiceID: req.ServiceID,
					Date:      req.Date,
					StartTime: req.StartTime,
					Available: true,
				}, nil
			}
			return uc.unavailable(req, reasonUnavailable), nil
		}
	}

	// Времени нет в сетке: либо вне рабочего окна, либо отфильтровано lead time
	return uc.unavailable(req, reasonNotInGrid), nil
}

func (uc *UseCase) unavailable(req *Request, reason string) *Response {
	return &Response{
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Available: false,
		Reason:    reason,
	}
}
