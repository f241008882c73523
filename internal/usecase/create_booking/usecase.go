package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleReader
	policyRepo   PolicyRepository
	catalog      CatalogClient
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleReader,
	policyRepo PolicyRepository,
	catalog CatalogClient,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		policyRepo:   policyRepo,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование со статусом pending
//
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции:
// из двух конкурентных запросов на один слот ровно один завершается успехом,
// второй получает ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: master=%d, client=%d, service=%d, date=%s, time=%s",
		req.MasterID, req.ClientID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и услугу из каталога
	master, err := uc.catalog.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("CreateBooking: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	service, err := uc.catalog.GetService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Текущее время в часовом поясе мастера
	now := uc.timeProvider.Now().In(domain.LocationOrUTC(master.Timezone))

	// 4. Политика бронирования
	policy, err := uc.policyRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateBooking: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.MasterID)
	}

	// 5. Валидация даты
	if err := validateDate(req.Date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Запрошенное время обязано попадать в сетку слотов расписания
	// (рабочий день, выравнивание по длительности услуги, вне перерывов,
	// с учетом lead time); занятость здесь ещё не авторитетна
	if err := uc.checkSlotInGrid(ctx, req, service.DurationMinutes, now, policy.MinLeadTimeMinutes); err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: booking does not fit into the day", ErrSlotNotAvailable)
	}

	booking := &domain.Booking{
		MasterID:        req.MasterID,
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusPending,
		ServiceName:     service.Name,
		ServicePrice:    servicePrice(service),
		Notes:           req.Notes,
	}

	// 7. Авторитетная проверка занятости и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.MasterBookingsFilter{
			MasterID:        req.MasterID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		active, err := uc.bookingRepo.GetByMasterWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		uc.reportStoredOverlaps(active)

		for _, existing := range active {
			if domain.OverlapsBooking(req.StartTime, endTime, existing) {
				return ErrSlotNotAvailable
			}
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot %s %s is taken for master=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.MasterID)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d for master=%d, client=%d",
		booking.ID, req.MasterID, req.ClientID)

	return toResponse(booking, endTime), nil
}

// checkSlotInGrid проверяет, что запрошенное время соответствует слоту
// в сетке расписания мастера: рабочий день, выравнивание по длительности,
// вне перерывов и не раньше now + minLeadTime
func (uc *UseCase) checkSlotInGrid(ctx context.Context, req *Request, durationMinutes int, now time.Time, minLeadTimeMinutes int) error {
	schedule, err := uc.scheduleRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: master id=%d has no schedule", req.MasterID)
			return fmt.Errorf("%w: master has no schedule", ErrSlotNotAvailable)
		}
		uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	entry := schedule.EntryFor(req.Date)
	if entry == nil || !entry.IsWorkingDay {
		return fmt.Errorf("%w: master is not working on this date", ErrSlotNotAvailable)
	}

	// Занятость проверяется авторитетно внутри транзакции, здесь сетка
	// строится без учета существующих бронирований
	slots := domain.GenerateSlots(entry, req.Date, durationMinutes, nil, now, minLeadTimeMinutes)

	for _, slot := range slots {
		if slot.StartTime == req.StartTime {
			if !slot.Available {
				return fmt.Errorf("%w: requested time falls on a break", ErrSlotNotAvailable)
			}
			return nil
		}
	}

	return fmt.Errorf("%w: requested time does not match the slot grid", ErrSlotNotAvailable)
}

func servicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0
	}
	return *service.Price
}

// reportStoredOverlaps проверяет инвариант хранилища: активные бронирования
// мастера не пересекаются. Нарушение - это повреждение данных, его логируем,
// но запрос не валим
func (uc *UseCase) reportStoredOverlaps(active []*domain.Booking) {
	for i := 0; i < len(active); i++ {
		endI, err := active[i].EndTime()
		if err != nil {
			continue
		}
		for j := i + 1; j < len(active); j++ {
			if domain.OverlapsBooking(active[i].StartTime, endI, active[j]) {
				uc.logger.Error("CreateBooking: data integrity fault: active bookings id=%d and id=%d overlap for master=%d",
					active[i].ID, active[j].ID, active[i].MasterID)
			}
		}
	}
}

func toResponse(booking *domain.Booking, endTime types.TimeString) *Response {
	return &Response{
		ID:              booking.ID,
		MasterID:        booking.MasterID,
		ClientID:        booking.ClientID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		EndTime:         endTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          booking.Status,
		ServiceName:     booking.ServiceName,
		ServicePrice:    booking.ServicePrice,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
	}
}
