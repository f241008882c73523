package check_availability

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
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

var checkDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник

func newTestUseCase() (*UseCase, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}

	schedule := &domain.WeeklySchedule{
		MasterID: 1,
		Entries: []domain.ScheduleEntry{
			{
				MasterID:     1,
				Weekday:      1,
				IsWorkingDay: true,
				StartTime:    types.TimeString("09:00"),
				EndTime:      types.TimeString("18:00"),
				Breaks: []domain.BreakInterval{
					{StartTime: types.TimeString("13:00"), EndTime: types.TimeString("14:00")},
				},
			},
		},
	}

	cat := &fakeCatalog{
		master: &catalog.Master{ID: 1, Timezone: "UTC", IsActive: true},
		service: &catalog.Service{
			ID: 3, MasterID: 1, Name: "Массаж спины", DurationMinutes: 60, IsActive: true,
		},
	}

	uc := NewUseCase(repo, &fakeScheduleReader{schedule: schedule}, fakePolicyRepo{}, cat, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}

	return uc, repo
}

func checkRequest(startTime string) *Request {
	return &Request{
		MasterID:  1,
		ServiceID: 3,
		Date:      checkDate,
		StartTime: types.TimeString(startTime),
	}
}

func TestExecute_AvailableSlot(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
}

func TestExecute_SlotOnBreak(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), checkRequest("13:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonUnavailable, resp.Reason)
}

func TestExecute_SlotTakenByBooking(t *testing.T) {
	uc, repo := newTestUseCase()
	repo.bookings = []*domain.Booking{
		{
			MasterID:        1,
			BookingDate:     checkDate,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonUnavailable, resp.Reason)
}

func TestExecute_TimeOffGrid(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Execute(context.Background(), checkRequest("10:30"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonNotInGrid, resp.Reason)
}

func TestExecute_PastDateIsUnavailableNotError(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonPastDate, resp.Reason)
}

func TestExecute_BeyondHorizonIsUnavailableNotError(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.timeProvider = fixedTime{now: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonTooFarInFuture, resp.Reason)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc, _ := newTestUseCase()

	req := checkRequest("10:00")
	req.Date = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник, записи нет

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonNotWorkingDay, resp.Reason)
}

func TestExecute_NoSchedule(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.scheduleRepo = &fakeScheduleReader{}

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonNotWorkingDay, resp.Reason)
}

func TestExecute_MasterNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.catalog = &fakeCatalog{}

	_, err := uc.Execute(context.Background(), checkRequest("10:00"))

	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase()

	req := checkRequest("garbage")
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Ответ проверки обязан совпадать с выдачей нарезки слотов для любого слота сетки
func TestExecute_AgreesWithSlotGeneration(t *testing.T) {
	uc, repo := newTestUseCase()
	repo.bookings = []*domain.Booking{
		{
			MasterID:        1,
			BookingDate:     checkDate,
			StartTime:       types.TimeString("15:00"),
			DurationMinutes: 60,
			Status:          domain.StatusPending,
		},
	}

	entry := &domain.ScheduleEntry{
		MasterID:     1,
		Weekday:      1,
		IsWorkingDay: true,
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("18:00"),
		Breaks: []domain.BreakInterval{
			{StartTime: types.TimeString("13:00"), EndTime: types.TimeString("14:00")},
		},
	}

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	slots := domain.GenerateSlots(entry, checkDate, 60, repo.bookings, now, domain.DefaultMinLeadTimeMinutes)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		resp, err := uc.Execute(context.Background(), checkRequest(slot.StartTime.String()))
		require.NoError(t, err)
		assert.Equal(t, slot.Available, resp.Available,
			"ответ для %s должен совпадать с нарезкой слотов", slot.StartTime)
	}
}
