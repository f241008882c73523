package get_slots_range

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	"github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCatalog struct {
	master  *catalog.Master
	service *catalog.Service
}

func (f *fakeCatalog) GetMaster(_ context.Context, _ int64) (*catalog.Master, error) {
	if f.master == nil {
		return nil, catalog.ErrMasterNotFound
	}
	return f.master, nil
}

func (f *fakeCatalog) GetService(_ context.Context, _, _ int64) (*catalog.Service, error) {
	if f.service == nil {
		return nil, catalog.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeScheduleReader struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeScheduleReader) GetByMaster(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakePolicyRepo struct{}

func (fakePolicyRepo) GetByMaster(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	return nil, policyRepo.ErrPolicyNotFound
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

// Неделя с понедельника 2026-09-14 по воскресенье 2026-09-20
var (
	rangeFrom = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	rangeTo   = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase() (*UseCase, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}

	// Рабочие будни, выходные суббота и воскресенье
	schedule := &domain.WeeklySchedule{MasterID: 1}
	for wd := 1; wd <= 5; wd++ {
		schedule.Entries = append(schedule.Entries, domain.ScheduleEntry{
			MasterID:     1,
			Weekday:      wd,
			IsWorkingDay: true,
			StartTime:    types.TimeString("09:00"),
			EndTime:      types.TimeString("18:00"),
		})
	}
	schedule.Entries = append(schedule.Entries,
		domain.ScheduleEntry{MasterID: 1, Weekday: 6, IsWorkingDay: false},
		domain.ScheduleEntry{MasterID: 1, Weekday: 0, IsWorkingDay: false},
	)

	cat := &fakeCatalog{
		master: &catalog.Master{ID: 1, Timezone: "UTC", IsActive: true},
		service: &catalog.Service{
			ID: 3, MasterID: 1, Name: "Массаж спины", DurationMinutes: 60, IsActive: true,
		},
	}

	uc := NewUseCase(repo, &fakeScheduleReader{schedule: schedule}, fakePolicyRepo{}, cat, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)}

	return uc, repo
}

func rangeRequest() *Request {
	return &Request{MasterID: 1, ServiceID: 3, From: rangeFrom, To: rangeTo}
}

func TestExecute_WeekCalendar(t *testing.T) {
	uc, repo := newTestUseCase()

	resp, err := uc.Execute(context.Background(), rangeRequest())

	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	for i, day := range resp.Days {
		assert.Equal(t, rangeFrom.AddDate(0, 0, i), day.Date)
	}

	// Будни рабочие и со слотами, выходные пустые
	for i := 0; i < 5; i++ {
		assert.True(t, resp.Days[i].IsWorkingDay)
		assert.Len(t, resp.Days[i].Slots, 9)
	}
	for i := 5; i < 7; i++ {
		assert.False(t, resp.Days[i].IsWorkingDay)
		assert.Empty(t, resp.Days[i].Slots)
	}

	assert.Equal(t, 1, repo.calls, "бронирования читаются одним запросом на весь диапазон")
}

func TestExecute_SingleDayRange(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rangeRequest()
	req.To = req.From

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.True(t, resp.Days[0].IsWorkingDay)
}

func TestExecute_BookingsAppliedToTheirDayOnly(t *testing.T) {
	uc, repo := newTestUseCase()
	repo.bookings = []*domain.Booking{
		{
			MasterID:        1,
			BookingDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // вторник
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	resp, err := uc.Execute(context.Background(), rangeRequest())

	require.NoError(t, err)

	for dayIdx, day := range resp.Days {
		for _, slot := range day.Slots {
			if dayIdx == 1 && slot.StartTime.String() == "10:00" {
				assert.False(t, slot.Available)
			} else {
				assert.True(t, slot.Available)
			}
		}
	}
}

func TestExecute_PastDaysStayEmpty(t *testing.T) {
	uc, _ := newTestUseCase()
	// "Сегодня" - среда 16-е: понедельник и вторник уже прошли
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), rangeRequest())

	require.NoError(t, err)
	assert.True(t, resp.Days[0].IsWorkingDay, "день остаётся рабочим даже без слотов")
	assert.Empty(t, resp.Days[0].Slots)
	assert.Empty(t, resp.Days[1].Slots)
	assert.NotEmpty(t, resp.Days[2].Slots)
}

func TestExecute_DaysBeyondHorizonStayEmpty(t *testing.T) {
	uc, _ := newTestUseCase()
	// Горизонт по умолчанию 30 дней: с 15 августа доступно по 14 сентября
	uc.timeProvider = fixedTime{now: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), rangeRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Days[0].Slots, "14 сентября ещё в горизонте")
	assert.Empty(t, resp.Days[1].Slots, "15 сентября уже за горизонтом")
}

func TestExecute_RangeTooLarge(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rangeRequest()
	req.To = req.From.AddDate(0, 0, domain.MaxRangeDays)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_ReversedRange(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rangeRequest()
	req.From, req.To = req.To, req.From

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_NoScheduleGivesEmptyCalendar(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.scheduleRepo = &fakeScheduleReader{}

	resp, err := uc.Execute(context.Background(), rangeRequest())

	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		assert.False(t, day.IsWorkingDay)
		assert.Empty(t, day.Slots)
	}
}

func TestExecute_MasterNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.catalog = &fakeCatalog{}

	_, err := uc.Execute(context.Background(), rangeRequest())

	assert.ErrorIs(t, err, ErrMasterNotFound)
}
