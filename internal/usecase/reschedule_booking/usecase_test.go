package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	bookingRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/booking"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
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
	master *catalog.Master
}

func (f *fakeCatalog) GetMaster(_ context.Context, _ int64) (*catalog.Master, error) {
	return f.master, nil
}

type fakeScheduleReader struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeScheduleReader) GetByMaster(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	return f.schedule, nil
}

type fakePolicyRepo struct{}

func (fakePolicyRepo) GetByMaster(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	return nil, policyRepo.ErrPolicyNotFound
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*domain.Booking), nextID: 100}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MasterID != filter.MasterID || !b.IsActive() {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	stored := *booking
	f.bookings[booking.ID] = &stored
	return booking, nil
}

func (f *fakeBookingRepo) MarkRescheduled(_ context.Context, id, newID int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusRescheduled
	b.RescheduledToID = &newID
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	originalDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник
	newDate      = time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC) // следующий понедельник
)

func newTestUseCase() (*UseCase, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = &domain.Booking{
		ID:              1,
		MasterID:        10,
		ClientID:        20,
		ServiceID:       3,
		BookingDate:     originalDate,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Классический массаж",
		ServicePrice:    3500,
	}

	schedule := &domain.WeeklySchedule{
		MasterID: 10,
		Entries: []domain.ScheduleEntry{
			{
				MasterID:     10,
				Weekday:      1,
				IsWorkingDay: true,
				StartTime:    types.TimeString("09:00"),
				EndTime:      types.TimeString("18:00"),
			},
		},
	}

	cat := &fakeCatalog{master: &catalog.Master{ID: 10, Timezone: "UTC", IsActive: true}}

	uc := NewUseCase(repo, &fakeScheduleReader{schedule: schedule}, fakePolicyRepo{}, cat, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)}

	return uc, repo
}

func rescheduleRequest() *Request {
	return &Request{
		BookingID:    1,
		RequestorID:  20, // клиент
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	uc, repo := newTestUseCase()

	resp, err := uc.Execute(context.Background(), rescheduleRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.PreviousID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "14:00", resp.StartTime.String())
	assert.Equal(t, "15:00", resp.EndTime.String())
	assert.Equal(t, "Классический массаж", resp.ServiceName)

	// Старое бронирование помечено rescheduled со ссылкой на новое
	old := repo.bookings[1]
	assert.Equal(t, domain.StatusRescheduled, old.Status)
	require.NotNil(t, old.RescheduledToID)
	assert.Equal(t, resp.ID, *old.RescheduledToID)

	// Новое бронирование наследует данные услуги
	created := repo.bookings[resp.ID]
	require.NotNil(t, created)
	assert.Equal(t, old.ServiceID, created.ServiceID)
	assert.Equal(t, old.DurationMinutes, created.DurationMinutes)
	assert.Equal(t, 3500.0, created.ServicePrice)

	// Старый интервал освободился: rescheduled не блокирует сетку
	entry := &domain.ScheduleEntry{
		MasterID:     10,
		Weekday:      1,
		IsWorkingDay: true,
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("18:00"),
	}
	active, err := repo.GetByMasterWithFilter(context.Background(), domain.MasterBookingsFilter{
		MasterID:  10,
		StartDate: &originalDate,
		EndDate:   &originalDate,
	})
	require.NoError(t, err)
	slots := domain.GenerateSlots(entry, originalDate, 60, active,
		time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), 0)
	for _, slot := range slots {
		if slot.StartTime.String() == "10:00" {
			assert.True(t, slot.Available, "интервал перенесённого бронирования снова доступен")
		}
	}
}

func TestExecute_MasterCanReschedule(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.RequestorID = 10 // мастер

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_StrangerDenied(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.RequestorID = 999

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.BookingID = 404

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_TerminalStatusNotReschedulable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusRescheduled,
	} {
		t.Run(string(status), func(t *testing.T) {
			uc, repo := newTestUseCase()
			repo.bookings[1].Status = status

			_, err := uc.Execute(context.Background(), rescheduleRequest())

			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_NewSlotTaken(t *testing.T) {
	uc, repo := newTestUseCase()
	repo.bookings[2] = &domain.Booking{
		ID:              2,
		MasterID:        10,
		ClientID:        77,
		BookingDate:     newDate,
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}

	_, err := uc.Execute(context.Background(), rescheduleRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status,
		"при конфликте старое бронирование остаётся нетронутым")
}

func TestExecute_RescheduleWithinOwnSlot(t *testing.T) {
	uc, _ := newTestUseCase()

	// Перенос на то же время того же дня: собственный интервал не конфликт
	req := rescheduleRequest()
	req.NewDate = originalDate
	req.NewStartTime = types.TimeString("10:00")

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_OffGridTime(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.NewStartTime = types.TimeString("14:15")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.NewDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPastDateRequested)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase()

	req := rescheduleRequest()
	req.NewStartTime = "2pm"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
