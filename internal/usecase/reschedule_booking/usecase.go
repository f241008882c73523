package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	bookingRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/booking"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
)

// UseCase use case для переноса бронирования на новое время
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

// Execute переносит бронирование: создает новое со статусом pending на новое
// время, а старое помечает rescheduled со ссылкой на новое
//
// Обе записи меняются в одной сериализуемой транзакции вместе с проверкой
// занятости нового слота. Интервал самого переносимого бронирования при
// проверке не учитывается - перенос внутри своего же интервала допустим
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, requestor=%d, newDate=%s, newTime=%s",
		req.BookingID, req.RequestorID,
		req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// Предварительное чтение вне транзакции: доступ, статус, часовой пояс
	original, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if original.ClientID != req.RequestorID && original.MasterID != req.RequestorID {
		uc.logger.Warn("RescheduleBooking: requestor=%d is not a party of booking id=%d",
			req.RequestorID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !original.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
			req.BookingID, original.Status)
		return nil, ErrNotReschedulable
	}

	master, err := uc.catalog.GetMaster(ctx, original.MasterID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get master id=%d: %v", original.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(domain.LocationOrUTC(master.Timezone))

	policy, err := uc.policyRepo.GetByMaster(ctx, original.MasterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(original.MasterID)
	}

	if err := validateDate(req.NewDate, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	if err := uc.checkSlotInGrid(ctx, original, req, now, policy.MinLeadTimeMinutes); err != nil {
		return nil, err
	}

	newEndTime, err := req.NewStartTime.AddMinutes(original.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: booking does not fit into the day", ErrSlotNotAvailable)
	}

	newBooking := &domain.Booking{
		MasterID:        original.MasterID,
		ClientID:        original.ClientID,
		ServiceID:       original.ServiceID,
		BookingDate:     req.NewDate,
		StartTime:       req.NewStartTime,
		DurationMinutes: original.DurationMinutes,
		Status:          domain.StatusPending,
		ServiceName:     original.ServiceName,
		ServicePrice:    original.ServicePrice,
		Notes:           original.Notes,
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем с блокировкой: статус мог измениться после
		// предварительной проверки
		locked, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		if !locked.CanBeRescheduled() {
			return ErrNotReschedulable
		}

		filter := domain.MasterBookingsFilter{
			MasterID:        original.MasterID,
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		active, err := uc.bookingRepo.GetByMasterWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		for _, existing := range active {
			if existing.ID == req.BookingID {
				continue
			}
			if domain.OverlapsBooking(req.NewStartTime, newEndTime, existing) {
				return ErrSlotNotAvailable
			}
		}

		if _, err := uc.bookingRepo.Create(txCtx, newBooking); err != nil {
			return fmt.Errorf("%w: failed to create new booking: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.MarkRescheduled(txCtx, req.BookingID, newBooking.ID); err != nil {
			return fmt.Errorf("%w: failed to mark booking rescheduled: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("RescheduleBooking: new slot %s %s is taken for master=%d",
				req.NewDate.Format(domain.DateFormat), req.NewStartTime, original.MasterID)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrNotReschedulable), errors.Is(err, ErrBookingNotFound):
			return nil, err
		default:
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
			return nil, err
		}
	}

	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to id=%d",
		req.BookingID, newBooking.ID)

	return &Response{
		ID:              newBooking.ID,
		PreviousID:      req.BookingID,
		MasterID:        newBooking.MasterID,
		ClientID:        newBooking.ClientID,
		ServiceID:       newBooking.ServiceID,
		BookingDate:     newBooking.BookingDate,
		StartTime:       newBooking.StartTime,
		EndTime:         newEndTime,
		DurationMinutes: newBooking.DurationMinutes,
		Status:          newBooking.Status,
		ServiceName:     newBooking.ServiceName,
		ServicePrice:    newBooking.ServicePrice,
		CreatedAt:       newBooking.CreatedAt,
	}, nil
}

// checkSlotInGrid проверяет попадание нового времени в сетку слотов
func (uc *UseCase) checkSlotInGrid(ctx context.Context, original *domain.Booking, req *Request, now time.Time, minLeadTimeMinutes int) error {
	schedule, err := uc.scheduleRepo.GetByMaster(ctx, original.MasterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return fmt.Errorf("%w: master has no schedule", ErrSlotNotAvailable)
		}
		uc.logger.Error("RescheduleBooking: failed to get schedule: %v", err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	entry := schedule.EntryFor(req.NewDate)
	if entry == nil || !entry.IsWorkingDay {
		return fmt.Errorf("%w: master is not working on this date", ErrSlotNotAvailable)
	}

	slots := domain.GenerateSlots(entry, req.NewDate, original.DurationMinutes, nil, now, minLeadTimeMinutes)

	for _, slot := range slots {
		if slot.StartTime == req.NewStartTime {
			if !slot.Available {
				return fmt.Errorf("%w: requested time falls on a break", ErrSlotNotAvailable)
			}
			return nil
		}
	}

	return fmt.Errorf("%w: requested time does not match the slot grid", ErrSlotNotAvailable)
}
