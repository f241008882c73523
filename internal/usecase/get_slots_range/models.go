package get_slots_range

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request входные данные для расчёта слотов на диапазон дат
type Request struct {
	MasterID  int64
	ServiceID int64
	From      time.Time
	To        time.Time
}

// Response календарь доступности по дням
type Response struct {
	MasterID  int64     `json:"master_id"`
	ServiceID int64     `json:"service_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Days      []Day     `json:"days"`
}

// Day слоты одного календарного дня
type Day struct {
	Date         time.Time `json:"date"`
	IsWorkingDay bool      `json:"is_working_day"`
	Slots        []Slot    `json:"slots"`
}

// Slot один слот в ответе
type Slot struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	Available bool             `json:"available"`
}
