package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
)

// UseCase use case для расчёта доступных слотов на дату
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

// Execute выполняет расчёт слотов на дату
// Слоты никогда не сохраняются - список пересчитывается на каждый запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: master=%d, service=%d, date=%s",
		req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера (в т.ч. его часовой пояс)
	master, err := uc.catalog.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 3. Получаем услугу (длительность задаёт шаг нарезки слотов)
	service, err := uc.catalog.GetService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Текущее время в часовом поясе мастера
	// Политика часовых поясов: отсечки "сегодня" и lead time считаются
	// в локальном времени мастера
	now := uc.timeProvider.Now().In(domain.LocationOrUTC(master.Timezone))

	// 5. Получаем политику бронирования (дефолтная, если не настроена)
	policy, err := uc.policyRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.MasterID)
	}

	// 6. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем расписание мастера
	// Отсутствие или некорректность расписания - это "нет доступности", не ошибка
	schedule, err := uc.scheduleRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: master id=%d has no schedule", req.MasterID)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	entry := schedule.EntryFor(req.Date)
	if entry == nil || !entry.IsWorkingDay {
		uc.logger.Info("GetAvailableSlots: master id=%d is not working on %s",
			req.MasterID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 8. Получаем активные бронирования на эту дату
	filter := domain.MasterBookingsFilter{
		MasterID:        req.MasterID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Нарезаем слоты и размечаем доступность
	slots := domain.GenerateSlots(entry, req.Date, service.DurationMinutes, bookings, now, policy.MinLeadTimeMinutes)

	uc.logger.Info("GetAvailableSlots: generated %d slots for master=%d, service=%d, date=%s",
		len(slots), req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Slots:     toResponseSlots(slots),
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}
}

func toResponseSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Available: slot.Available,
		}
	}
	return result
}
