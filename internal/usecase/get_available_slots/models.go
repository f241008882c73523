package get_available_slots

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// Request модель запроса на получение слотов на дату
type Request struct {
	MasterID  int64     // ID мастера
	ServiceID int64     // ID услуги (задаёт длительность слота)
	Date      time.Time // Дата для расчёта слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	MasterID  int64     // ID мастера
	ServiceID int64     // ID услуги
	Slots     []Slot    // Слоты в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время окончания слота
	Available bool             // Доступен ли слот для бронирования
}
