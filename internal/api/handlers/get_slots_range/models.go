package get_slots_range

import (
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	getSlotsRange "github.com/relaxity/RLX-BookingService/internal/usecase/get_slots_range"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// DayResponse слоты одного дня
type DayResponse struct {
	Date         string         `json:"date"` // "2026-09-15"
	IsWorkingDay bool           `json:"isWorkingDay"`
	Slots        []SlotResponse `json:"slots"`
}

// RangeResponse HTTP ответ с календарем доступности
type RangeResponse struct {
	MasterID  int64         `json:"masterId"`
	ServiceID int64         `json:"serviceId"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Days      []DayResponse `json:"days"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(masterID, serviceID int64, fromStr, toStr string) (*getSlotsRange.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getSlotsRange.Request{
		MasterID:  masterID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotsRange.Response) *RangeResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = SlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				Available: slot.Available,
			}
		}
		days[i] = DayResponse{
			Date:         day.Date.Format(domain.DateFormat),
			IsWorkingDay: day.IsWorkingDay,
			Slots:        slots,
		}
	}

	return &RangeResponse{
		MasterID:  resp.MasterID,
		ServiceID: resp.ServiceID,
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
		Days:      days,
	}
}
