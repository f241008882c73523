package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxity/RLX-BookingService/internal/domain"
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
	return f.schedule, nil
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicyRepo) GetByMaster(_ context.Context, _ int64) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return f.policy, nil
}

// fakeBookingRepo хранит бронирования в памяти
// Потокобезопасность обеспечивает fakeTxManager, сериализующий транзакции
type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return booking, nil
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MasterID != filter.MasterID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
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

// fakeTxManager эмулирует сериализуемые транзакции взаимным исключением:
// проверка занятости и вставка выполняются атомарно
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

var bookingDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // понедельник

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
			},
		},
	}

	price := 3500.0
	cat := &fakeCatalog{
		master: &catalog.Master{ID: 1, Name: "Анна", Timezone: "UTC", IsActive: true},
		service: &catalog.Service{
			ID: 3, MasterID: 1, Name: "Классический массаж",
			DurationMinutes: 60, Price: &price, IsActive: true,
		},
	}

	uc := NewUseCase(repo, &fakeScheduleReader{schedule: schedule}, &fakePolicyRepo{}, cat, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}

	return uc, repo
}

func validRequest() *Request {
	return &Request{
		MasterID:  1,
		ClientID:  2,
		ServiceID: 3,
		Date:      bookingDate,
		StartTime: types.TimeString("10:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	uc, repo := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Классический массаж", resp.ServiceName)
	assert.Equal(t, 3500.0, resp.ServicePrice)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestUseCase()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой мастер", func(r *Request) { r.MasterID = 0 }},
		{"нулевой клиент", func(r *Request) { r.ClientID = 0 }},
		{"нулевая услуга", func(r *Request) { r.ServiceID = 0 }},
		{"пустая дата", func(r *Request) { r.Date = time.Time{} }},
		{"кривое время", func(r *Request) { r.StartTime = "10am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MasterNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.catalog = &fakeCatalog{}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.catalog = &fakeCatalog{master: &catalog.Master{ID: 1, Timezone: "UTC"}}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _ := newTestUseCase()
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPastDateRequested)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	uc, _ := newTestUseCase()
	// Политика по умолчанию: 30 дней вперёд
	uc.timeProvider = fixedTime{now: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TimeOffGrid(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.StartTime = types.TimeString("10:30") // сетка часовая, начало 09:00

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NonWorkingDay(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.Date = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // вторник, записи нет

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotTaken(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.ClientID = 99
	_, err = uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_OverlappingTimeTaken(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Слот 11:00 свободен: интервалы встык не пересекаются
	req := validRequest()
	req.StartTime = types.TimeString("11:00")
	_, err = uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, repo.bookings, 2)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	uc, repo := newTestUseCase()

	repo.bookings = append(repo.bookings, &domain.Booking{
		ID:              100,
		MasterID:        1,
		ClientID:        50,
		BookingDate:     bookingDate,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusCancelledByClient,
	})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	uc, repo := newTestUseCase()

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.ClientID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, succeeded, "ровно один из конкурентных запросов выигрывает слот")
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_LeadTimeEnforced(t *testing.T) {
	uc, _ := newTestUseCase()

	// Бронируем в тот же день: 09:30 + 120 минут lead time -> слоты до 11:30 недоступны
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)}

	req := validRequest() // 10:00
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	req.StartTime = types.TimeString("12:00")
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
