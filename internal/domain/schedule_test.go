package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   ScheduleEntry
		wantErr bool
	}{
		{
			name:  "корректный рабочий день",
			entry: *workingEntry("09:00", "18:00"),
		},
		{
			name:  "выходной без времени",
			entry: ScheduleEntry{Weekday: 0, IsWorkingDay: false},
		},
		{
			name:    "конец раньше начала",
			entry:   *workingEntry("18:00", "09:00"),
			wantErr: true,
		},
		{
			name:    "нулевое окно",
			entry:   *workingEntry("10:00", "10:00"),
			wantErr: true,
		},
		{
			name:    "некорректный формат времени",
			entry:   *workingEntry("9am", "18:00"),
			wantErr: true,
		},
		{
			name: "недопустимый день недели",
			entry: ScheduleEntry{
				Weekday:      7,
				IsWorkingDay: false,
			},
			wantErr: true,
		},
		{
			name: "рабочий день до конца суток",
			entry: func() ScheduleEntry {
				e := workingEntry("12:00", "24:00")
				return *e
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleEntry_ValidateBreaks(t *testing.T) {
	base := func() *ScheduleEntry { return workingEntry("09:00", "18:00") }

	t.Run("перерыв внутри окна", func(t *testing.T) {
		e := base()
		e.Breaks = []BreakInterval{{StartTime: ts("13:00"), EndTime: ts("14:00")}}
		assert.NoError(t, e.Validate())
	})

	t.Run("перерыв выходит за окно", func(t *testing.T) {
		e := base()
		e.Breaks = []BreakInterval{{StartTime: ts("17:30"), EndTime: ts("18:30")}}
		assert.ErrorIs(t, e.Validate(), ErrInvalidSchedule)
	})

	t.Run("перерыв с нулевой длиной", func(t *testing.T) {
		e := base()
		e.Breaks = []BreakInterval{{StartTime: ts("13:00"), EndTime: ts("13:00")}}
		assert.ErrorIs(t, e.Validate(), ErrInvalidSchedule)
	})

	t.Run("пересекающиеся перерывы", func(t *testing.T) {
		e := base()
		e.Breaks = []BreakInterval{
			{StartTime: ts("12:00"), EndTime: ts("13:00")},
			{StartTime: ts("12:30"), EndTime: ts("14:00")},
		}
		assert.ErrorIs(t, e.Validate(), ErrInvalidSchedule)
	})

	t.Run("перерывы встык допустимы", func(t *testing.T) {
		e := base()
		e.Breaks = []BreakInterval{
			{StartTime: ts("12:00"), EndTime: ts("13:00")},
			{StartTime: ts("13:00"), EndTime: ts("13:30")},
		}
		assert.NoError(t, e.Validate())
	})
}

func TestWeeklySchedule_Validate(t *testing.T) {
	t.Run("дубликат дня недели", func(t *testing.T) {
		s := WeeklySchedule{
			MasterID: 1,
			Entries: []ScheduleEntry{
				*workingEntry("09:00", "18:00"),
				*workingEntry("10:00", "19:00"),
			},
		}
		assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
	})

	t.Run("полная неделя", func(t *testing.T) {
		s := WeeklySchedule{MasterID: 1}
		for wd := 0; wd < 7; wd++ {
			e := *workingEntry("09:00", "18:00")
			e.Weekday = wd
			s.Entries = append(s.Entries, e)
		}
		assert.NoError(t, s.Validate())
	})
}

func TestWeeklySchedule_EntryFor(t *testing.T) {
	monday := *workingEntry("09:00", "18:00") // Weekday: 1
	saturday := ScheduleEntry{MasterID: 1, Weekday: 6, IsWorkingDay: false}

	s := WeeklySchedule{MasterID: 1, Entries: []ScheduleEntry{monday, saturday}}

	// 2026-09-14 - понедельник
	entry := s.EntryFor(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, entry)
	assert.True(t, entry.IsWorkingDay)

	// 2026-09-19 - суббота
	entry = s.EntryFor(time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, entry)
	assert.False(t, entry.IsWorkingDay)

	// 2026-09-16 - среда, записи нет
	assert.Nil(t, s.EntryFor(time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), now),
		"сегодняшний день не считается прошедшим")
	assert.False(t, IsDateInPast(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsDateInPast(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsDateInPast(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestLocationOrUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LocationOrUTC(""))
	assert.Equal(t, time.UTC, LocationOrUTC("Not/AZone"))

	loc := LocationOrUTC("Europe/Moscow")
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/Moscow", loc.String())
}
