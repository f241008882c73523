package update_schedule

import (
	"github.com/relaxity/RLX-BookingService/internal/service/schedule/models"
)

// BreakRequest перерыв в HTTP запросе
type BreakRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// EntryRequest запись расписания в HTTP запросе
type EntryRequest struct {
	Weekday      int            `json:"weekday" validate:"min=0,max=6"`
	IsWorkingDay bool           `json:"isWorkingDay"`
	StartTime    string         `json:"startTime,omitempty"`
	EndTime      string         `json:"endTime,omitempty"`
	Breaks       []BreakRequest `json:"breaks,omitempty" validate:"dive"`
}

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Entries []EntryRequest `json:"entries" validate:"required,max=7,dive"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(masterID int64) *models.UpdateScheduleRequest {
	entries := make([]models.EntryRequest, len(r.Entries))
	for i, e := range r.Entries {
		breaks := make([]models.BreakRequest, len(e.Breaks))
		for j, br := range e.Breaks {
			breaks[j] = models.BreakRequest{
				StartTime: br.StartTime,
				EndTime:   br.EndTime,
			}
		}
		entries[i] = models.EntryRequest{
			Weekday:      e.Weekday,
			IsWorkingDay: e.IsWorkingDay,
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
			Breaks:       breaks,
		}
	}

	return &models.UpdateScheduleRequest{
		MasterID: masterID,
		Entries:  entries,
	}
}
