package models

import (
	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request модели

// BreakRequest перерыв в запросе на обновление расписания
type BreakRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// EntryRequest запись расписания на один день недели
type EntryRequest struct {
	Weekday      int            `json:"weekday" validate:"min=0,max=6"`
	IsWorkingDay bool           `json:"isWorkingDay"`
	StartTime    string         `json:"startTime,omitempty"`
	EndTime      string         `json:"endTime,omitempty"`
	Breaks       []BreakRequest `json:"breaks,omitempty"`
}

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	MasterID int64          `json:"masterId"`
	Entries  []EntryRequest `json:"entries" validate:"required,dive"`
}

// ToDomainEntries конвертирует запрос в domain модели
func (r *UpdateScheduleRequest) ToDomainEntries() ([]domain.ScheduleEntry, error) {
	entries := make([]domain.ScheduleEntry, len(r.Entries))

	for i, e := range r.Entries {
		entry := domain.ScheduleEntry{
			MasterID:     r.MasterID,
			Weekday:      e.Weekday,
			IsWorkingDay: e.IsWorkingDay,
		}

		if e.IsWorkingDay {
			start, err := types.NewTimeStringFromString(e.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := types.NewTimeStringFromString(e.EndTime)
			if err != nil {
				return nil, err
			}
			entry.StartTime = start
			entry.EndTime = end

			entry.Breaks = make([]domain.BreakInterval, len(e.Breaks))
			for j, br := range e.Breaks {
				brStart, err := types.NewTimeStringFromString(br.StartTime)
				if err != nil {
					return nil, err
				}
				brEnd, err := types.NewTimeStringFromString(br.EndTime)
				if err != nil {
					return nil, err
				}
				entry.Breaks[j] = domain.BreakInterval{StartTime: brStart, EndTime: brEnd}
			}
		}

		entries[i] = entry
	}

	return entries, nil
}

// Response модели

// BreakResponse перерыв в ответе
type BreakResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// EntryResponse запись расписания в ответе
type EntryResponse struct {
	Weekday      int             `json:"weekday"`
	IsWorkingDay bool            `json:"isWorkingDay"`
	StartTime    string          `json:"startTime,omitempty"`
	EndTime      string          `json:"endTime,omitempty"`
	Breaks       []BreakResponse `json:"breaks,omitempty"`
}

// ScheduleResponse недельное расписание мастера
type ScheduleResponse struct {
	MasterID int64           `json:"masterId"`
	Entries  []EntryResponse `json:"entries"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		MasterID: s.MasterID,
		Entries:  make([]EntryResponse, len(s.Entries)),
	}

	for i, entry := range s.Entries {
		er := EntryResponse{
			Weekday:      entry.Weekday,
			IsWorkingDay: entry.IsWorkingDay,
		}

		if entry.IsWorkingDay {
			er.StartTime = entry.StartTime.String()
			er.EndTime = entry.EndTime.String()
			er.Breaks = make([]BreakResponse, len(entry.Breaks))
			for j, br := range entry.Breaks {
				er.Breaks[j] = BreakResponse{
					StartTime: br.StartTime.String(),
					EndTime:   br.EndTime.String(),
				}
			}
		}

		resp.Entries[i] = er
	}

	return resp
}
