package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingWithStatus(status BookingStatus) *Booking {
	return &Booking{
		ID:              1,
		MasterID:        10,
		ClientID:        20,
		ServiceID:       30,
		StartTime:       ts("10:00"),
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestBooking_EndTime(t *testing.T) {
	b := bookingWithStatus(StatusPending)
	b.StartTime = ts("10:30")
	b.DurationMinutes = 90

	end, err := b.EndTime()

	require.NoError(t, err)
	assert.Equal(t, "12:00", end.String())
}

func TestBooking_EndTimeAtMidnight(t *testing.T) {
	b := bookingWithStatus(StatusPending)
	b.StartTime = ts("23:00")
	b.DurationMinutes = 60

	end, err := b.EndTime()

	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())
}

func TestBooking_IsActive(t *testing.T) {
	active := map[BookingStatus]bool{
		StatusPending:           true,
		StatusConfirmed:         true,
		StatusInProgress:        true,
		StatusCompleted:         false,
		StatusCancelledByClient: false,
		StatusCancelledByMaster: false,
		StatusNoShow:            false,
		StatusRescheduled:       false,
	}

	for status, want := range active {
		assert.Equal(t, want, bookingWithStatus(status).IsActive(), "status %s", status)
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"подтверждение из pending", StatusPending, StatusConfirmed, true},
		{"подтверждение из confirmed", StatusConfirmed, StatusConfirmed, false},
		{"начало из confirmed", StatusConfirmed, StatusInProgress, true},
		{"начало из pending", StatusPending, StatusInProgress, false},
		{"завершение из in_progress", StatusInProgress, StatusCompleted, true},
		{"завершение из confirmed", StatusConfirmed, StatusCompleted, false},
		{"отмена клиентом из pending", StatusPending, StatusCancelledByClient, true},
		{"отмена мастером из confirmed", StatusConfirmed, StatusCancelledByMaster, true},
		{"отмена из in_progress", StatusInProgress, StatusCancelledByClient, false},
		{"отмена из completed", StatusCompleted, StatusCancelledByClient, false},
		{"неявка из confirmed", StatusConfirmed, StatusNoShow, true},
		{"неявка из in_progress", StatusInProgress, StatusNoShow, false},
		{"перенос из pending", StatusPending, StatusRescheduled, true},
		{"перенос из in_progress", StatusInProgress, StatusRescheduled, false},
		{"перенос из rescheduled", StatusRescheduled, StatusRescheduled, false},
		{"неизвестный статус", StatusPending, BookingStatus("unknown"), false},
		{"возврат в pending запрещён", StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookingWithStatus(tt.from)
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_TerminalStatusesHaveNoTransitions(t *testing.T) {
	all := []BookingStatus{
		StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByMaster, StatusNoShow, StatusRescheduled,
	}

	for _, from := range InactiveStatuses {
		b := bookingWithStatus(from)
		for _, to := range all {
			assert.False(t, b.CanTransitionTo(to),
				"из терминального %s не должно быть перехода в %s", from, to)
		}
	}
}

func TestBooking_IsFinished(t *testing.T) {
	for _, status := range InactiveStatuses {
		assert.True(t, bookingWithStatus(status).IsFinished(), "status %s", status)
	}
	for _, status := range ActiveStatuses {
		assert.False(t, bookingWithStatus(status).IsFinished(), "status %s", status)
	}
}

func TestOverlapsBooking_InactiveIgnored(t *testing.T) {
	b := bookingWithStatus(StatusRescheduled)

	assert.False(t, OverlapsBooking(ts("10:00"), ts("11:00"), b))

	b.Status = StatusPending
	assert.True(t, OverlapsBooking(ts("10:00"), ts("11:00"), b))
}
