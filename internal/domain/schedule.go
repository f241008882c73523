package domain

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// BreakInterval перерыв внутри рабочего дня, [StartTime, EndTime)
type BreakInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ScheduleEntry рабочее окно мастера на один день недели
// Weekday: 0 (воскресенье) - 6 (суббота), как в time.Weekday
type ScheduleEntry struct {
	ID           int64
	MasterID     int64
	Weekday      int
	IsWorkingDay bool
	StartTime    types.TimeString
	EndTime      types.TimeString
	Breaks       []BreakInterval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность рабочего окна и перерывов
func (e *ScheduleEntry) Validate() error {
	if e.Weekday < 0 || e.Weekday > 6 {
		return ErrInvalidSchedule
	}

	if !e.IsWorkingDay {
		return nil
	}

	if e.StartTime.Validate() != nil || e.EndTime.Validate() != nil {
		return ErrInvalidSchedule
	}

	if !e.StartTime.IsBefore(e.EndTime) {
		return ErrInvalidSchedule
	}

	// Перерывы должны лежать внутри окна, быть упорядочены и не пересекаться
	var prevEnd types.TimeString
	for _, br := range e.Breaks {
		if br.StartTime.Validate() != nil || br.EndTime.Validate() != nil {
			return ErrInvalidSchedule
		}
		if !br.StartTime.IsBefore(br.EndTime) {
			return ErrInvalidSchedule
		}
		if br.StartTime.IsBefore(e.StartTime) || br.EndTime.IsAfter(e.EndTime) {
			return ErrInvalidSchedule
		}
		if !prevEnd.IsZero() && br.StartTime.IsBefore(prevEnd) {
			return ErrInvalidSchedule
		}
		prevEnd = br.EndTime
	}

	return nil
}

// WeeklySchedule недельное расписание мастера, по одной записи на день недели
type WeeklySchedule struct {
	MasterID int64
	Entries  []ScheduleEntry
}

// EntryFor возвращает запись расписания на день недели указанной даты
// Возвращает nil, если запись отсутствует
func (s *WeeklySchedule) EntryFor(date time.Time) *ScheduleEntry {
	weekday := int(date.Weekday())
	for i := range s.Entries {
		if s.Entries[i].Weekday == weekday {
			return &s.Entries[i]
		}
	}
	return nil
}

// Validate проверяет все записи недельного расписания
// Дубликаты дней недели недопустимы
func (s *WeeklySchedule) Validate() error {
	seen := make(map[int]bool, len(s.Entries))
	for i := range s.Entries {
		entry := &s.Entries[i]
		if seen[entry.Weekday] {
			return ErrInvalidSchedule
		}
		seen[entry.Weekday] = true

		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}
