package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func workingEntry(start, end string) *ScheduleEntry {
	return &ScheduleEntry{
		MasterID:     1,
		Weekday:      1, // понедельник
		IsWorkingDay: true,
		StartTime:    ts(start),
		EndTime:      ts(end),
	}
}

// 2026-09-14 - понедельник
var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

// now задолго до даты, lead time не влияет
var farNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func TestGenerateSlots_FullDayNoBookings(t *testing.T) {
	entry := workingEntry("09:00", "18:00")

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 120)

	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "17:00", slots[8].StartTime.String())
	assert.Equal(t, "18:00", slots[8].EndTime.String())

	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestGenerateSlots_TailShorterThanDurationDropped(t *testing.T) {
	entry := workingEntry("09:00", "18:30")

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	// Хвост 18:00-18:30 слот не порождает
	require.Len(t, slots, 9)
	assert.Equal(t, "18:00", slots[8].EndTime.String())
}

func TestGenerateSlots_SlotsAreContiguous(t *testing.T) {
	entry := workingEntry("10:00", "14:00")

	slots := GenerateSlots(entry, testDate, 45, nil, farNow, 0)

	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime,
			"слоты должны идти без зазоров")
	}
}

func TestGenerateSlots_BreakMarksSlotsUnavailable(t *testing.T) {
	entry := workingEntry("09:00", "18:00")
	entry.Breaks = []BreakInterval{
		{StartTime: ts("13:00"), EndTime: ts("14:00")},
	}

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	require.Len(t, slots, 9)
	for _, slot := range slots {
		if slot.StartTime.String() == "13:00" {
			assert.False(t, slot.Available, "слот внутри перерыва недоступен")
		} else {
			assert.True(t, slot.Available)
		}
	}
}

func TestGenerateSlots_BreakPartialOverlapMarksBothSlots(t *testing.T) {
	entry := workingEntry("09:00", "18:00")
	entry.Breaks = []BreakInterval{
		{StartTime: ts("12:30"), EndTime: ts("13:30")},
	}

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	unavailable := make([]string, 0)
	for _, slot := range slots {
		if !slot.Available {
			unavailable = append(unavailable, slot.StartTime.String())
		}
	}

	assert.Equal(t, []string{"12:00", "13:00"}, unavailable)
}

func TestGenerateSlots_BreakCoveringWholeWindow(t *testing.T) {
	entry := workingEntry("09:00", "18:00")
	entry.Breaks = []BreakInterval{
		{StartTime: ts("09:00"), EndTime: ts("18:00")},
	}

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	// Полностью занятый день всё равно перечисляется
	require.Len(t, slots, 9)
	for _, slot := range slots {
		assert.False(t, slot.Available)
	}
}

func TestGenerateSlots_ActiveBookingBlocksSlot(t *testing.T) {
	entry := workingEntry("09:00", "18:00")
	bookings := []*Booking{
		{
			StartTime:       ts("10:00"),
			DurationMinutes: 60,
			Status:          StatusConfirmed,
		},
	}

	slots := GenerateSlots(entry, testDate, 60, bookings, farNow, 0)

	require.Len(t, slots, 9)
	for _, slot := range slots {
		if slot.StartTime.String() == "10:00" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}
}

func TestGenerateSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	entry := workingEntry("09:00", "12:00")
	bookings := []*Booking{
		{
			StartTime:       ts("10:00"),
			DurationMinutes: 60,
			Status:          StatusCancelledByClient,
		},
	}

	slots := GenerateSlots(entry, testDate, 60, bookings, farNow, 0)

	for _, slot := range slots {
		assert.True(t, slot.Available, "отменённое бронирование не блокирует слот")
	}
}

func TestGenerateSlots_BackToBackBookingsDoNotConflict(t *testing.T) {
	entry := workingEntry("09:00", "12:00")
	bookings := []*Booking{
		{
			StartTime:       ts("09:00"),
			DurationMinutes: 60,
			Status:          StatusConfirmed,
		},
	}

	slots := GenerateSlots(entry, testDate, 60, bookings, farNow, 0)

	// Слот 10:00 начинается ровно в момент окончания бронирования
	require.Len(t, slots, 3)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
	assert.True(t, slots[2].Available)
}

func TestGenerateSlots_SameDayLeadTimeDropsEarlySlots(t *testing.T) {
	entry := workingEntry("09:00", "18:00")

	// Сегодня 10:30, lead time 2 часа: слоты раньше 12:30 выбрасываются
	now := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)

	slots := GenerateSlots(entry, testDate, 60, nil, now, 120)

	require.NotEmpty(t, slots)
	assert.Equal(t, "13:00", slots[0].StartTime.String(),
		"ранние слоты выбрасываются, а не помечаются недоступными")
	assert.Len(t, slots, 5)
}

func TestGenerateSlots_OtherDayIgnoresLeadTime(t *testing.T) {
	entry := workingEntry("09:00", "18:00")

	now := time.Date(2026, 9, 13, 23, 0, 0, 0, time.UTC)

	slots := GenerateSlots(entry, testDate, 60, nil, now, 600)

	assert.Len(t, slots, 9)
}

func TestGenerateSlots_LeadTimePastMidnightGivesEmpty(t *testing.T) {
	entry := workingEntry("09:00", "18:00")

	// 23:00 + 120 минут уходит за конец суток
	now := time.Date(2026, 9, 14, 23, 0, 0, 0, time.UTC)

	slots := GenerateSlots(entry, testDate, 60, nil, now, 120)

	assert.Empty(t, slots)
}

func TestGenerateSlots_NonWorkingDay(t *testing.T) {
	entry := &ScheduleEntry{MasterID: 1, Weekday: 0, IsWorkingDay: false}

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	assert.Empty(t, slots)
}

func TestGenerateSlots_NilEntry(t *testing.T) {
	slots := GenerateSlots(nil, testDate, 60, nil, farNow, 0)

	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidScheduleGivesEmpty(t *testing.T) {
	// Конец раньше начала
	entry := workingEntry("18:00", "09:00")

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	assert.Empty(t, slots)
}

func TestGenerateSlots_ZeroDuration(t *testing.T) {
	entry := workingEntry("09:00", "18:00")

	slots := GenerateSlots(entry, testDate, 0, nil, farNow, 0)

	assert.Empty(t, slots)
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	entry := workingEntry("09:00", "10:00")

	slots := GenerateSlots(entry, testDate, 90, nil, farNow, 0)

	assert.Empty(t, slots)
}

func TestGenerateSlots_UntilEndOfDay(t *testing.T) {
	entry := workingEntry("22:00", "24:00")

	slots := GenerateSlots(entry, testDate, 60, nil, farNow, 0)

	require.Len(t, slots, 2)
	assert.Equal(t, "23:00", slots[1].StartTime.String())
	assert.Equal(t, "24:00", slots[1].EndTime.String())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		aStart, aEnd   string
		bStart, bEnd   string
		expectOverlaps bool
	}{
		{"пересечение", "10:00", "11:00", "10:30", "11:30", true},
		{"вложение", "10:00", "12:00", "10:30", "11:00", true},
		{"совпадение", "10:00", "11:00", "10:00", "11:00", true},
		{"встык справа", "10:00", "11:00", "11:00", "12:00", false},
		{"встык слева", "11:00", "12:00", "10:00", "11:00", false},
		{"не пересекаются", "09:00", "10:00", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				ts(tt.aStart), ts(tt.aEnd),
				ts(tt.bStart), ts(tt.bEnd),
			)
			assert.Equal(t, tt.expectOverlaps, got)
		})
	}
}
