package get_slots_range

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
)

// UseCase use case для построения календаря доступности на диапазон дат
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

// Execute строит календарь доступности по дням диапазона
// Мастер, услуга, политика и расписание читаются по одному разу,
// бронирования - одним запросом на весь диапазон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotsRange: master=%d, service=%d, from=%s, to=%s",
		req.MasterID, req.ServiceID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных и размера диапазона
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotsRange: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и услугу
	master, err := uc.catalog.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrMasterNotFound) {
			uc.logger.Warn("GetSlotsRange: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetSlotsRange: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	service, err := uc.catalog.GetService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetSlotsRange: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetSlotsRange: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Текущее время в часовом поясе мастера
	now := uc.timeProvider.Now().In(domain.LocationOrUTC(master.Timezone))

	// 4. Политика бронирования (дефолтная, если не настроена)
	policy, err := uc.policyRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetSlotsRange: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.MasterID)
	}

	// 5. Расписание мастера: отсутствие означает пустой календарь
	schedule, err := uc.scheduleRepo.GetByMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetSlotsRange: master id=%d has no schedule", req.MasterID)
			return uc.emptyDaysResponse(req), nil
		}
		uc.logger.Error("GetSlotsRange: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 6. Все активные бронирования диапазона одним запросом
	filter := domain.MasterBookingsFilter{
		MasterID:        req.MasterID,
		StartDate:       &req.From,
		EndDate:         &req.To,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlotsRange: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	bookingsByDate := groupBookingsByDate(bookings)

	// 7. Для каждого дня диапазона нарезаем слоты независимо
	days := make([]Day, 0, rangeDays(req.From, req.To))
	for date := dateOnly(req.From); !date.After(dateOnly(req.To)); date = date.AddDate(0, 0, 1) {
		day := Day{
			Date:  date,
			Slots: []Slot{},
		}

		// Прошедшие дни и дни за горизонтом бронирования остаются пустыми
		entry := schedule.EntryFor(date)
		if entry != nil && entry.IsWorkingDay {
			day.IsWorkingDay = true
		}

		if day.IsWorkingDay && uc.dateIsBookable(date, now, policy.AdvanceBookingDays) {
			slots := domain.GenerateSlots(entry, date, service.DurationMinutes,
				bookingsByDate[date.Format(domain.DateFormat)], now, policy.MinLeadTimeMinutes)
			day.Slots = toResponseSlots(slots)
		}

		days = append(days, day)
	}

	uc.logger.Info("GetSlotsRange: built %d days for master=%d, service=%d",
		len(days), req.MasterID, req.ServiceID)

	return &Response{
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		From:      req.From,
		To:        req.To,
		Days:      days,
	}, nil
}

// dateIsBookable проверяет, что день не в прошлом и не за горизонтом бронирования
func (uc *UseCase) dateIsBookable(date, now time.Time, advanceBookingDays int) bool {
	if domain.IsDateInPast(date, now) {
		return false
	}

	if advanceBookingDays == 0 {
		return true
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, advanceBookingDays)

	return !dateOnly(date).After(maxDate)
}

func (uc *UseCase) emptyDaysResponse(req *Request) *Response {
	days := make([]Day, 0, rangeDays(req.From, req.To))
	for date := dateOnly(req.From); !date.After(dateOnly(req.To)); date = date.AddDate(0, 0, 1) {
		days = append(days, Day{Date: date, Slots: []Slot{}})
	}

	return &Response{
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		From:      req.From,
		To:        req.To,
		Days:      days,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func groupBookingsByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	grouped := make(map[string][]*domain.Booking, len(bookings))
	for _, booking := range bookings {
		key := booking.BookingDate.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], booking)
	}
	return grouped
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
