package domain

import (
	"time"

	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// GenerateSlots строит список слотов мастера на день
//
// Алгоритм:
//  1. Рабочее окно [start, end) нарезается слотами длиной в услугу без зазоров
//     и наложений; хвост короче длительности слот не порождает
//  2. Слоты, пересекающие перерыв, помечаются недоступными, но остаются в списке
//  3. Слоты, пересекающие активные бронирования, помечаются недоступными
//  4. Если дата - сегодня (в часовом поясе мастера), слоты раньше
//     now + minLeadTime выбрасываются из списка целиком
//
// Нерабочий день и некорректное расписание дают пустой список
func GenerateSlots(
	entry *ScheduleEntry,
	date time.Time,
	durationMinutes int,
	bookings []*Booking,
	now time.Time,
	minLeadTimeMinutes int,
) []Slot {
	if entry == nil || !entry.IsWorkingDay || durationMinutes <= 0 {
		return []Slot{}
	}

	// Некорректное рабочее окно трактуем как отсутствие доступности
	if err := entry.Validate(); err != nil {
		return []Slot{}
	}

	slots := make([]Slot, 0)
	current := entry.StartTime

	for current.IsBefore(entry.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(entry.EndTime) {
			break
		}

		slot := Slot{
			Date:      date,
			StartTime: current,
			EndTime:   slotEnd,
			Available: true,
		}

		if intersectsBreak(current, slotEnd, entry.Breaks) {
			slot.Available = false
		}

		if slot.Available && overlapsAnyBooking(current, slotEnd, bookings) {
			slot.Available = false
		}

		slots = append(slots, slot)
		current = slotEnd
	}

	if !IsSameDay(date, now) {
		return slots
	}

	// Сегодняшние слоты фильтруем по минимальному времени до начала
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minLeadTimeMinutes)
	if err != nil {
		// Порог ушёл за конец суток - сегодня бронировать уже нечего
		return []Slot{}
	}

	filtered := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// intersectsBreak проверяет пересечение слота с любым из перерывов
func intersectsBreak(start, end types.TimeString, breaks []BreakInterval) bool {
	for _, br := range breaks {
		if Overlaps(start, end, br.StartTime, br.EndTime) {
			return true
		}
	}
	return false
}

// overlapsAnyBooking проверяет пересечение слота с активными бронированиями
func overlapsAnyBooking(start, end types.TimeString, bookings []*Booking) bool {
	for _, booking := range bookings {
		if OverlapsBooking(start, end, booking) {
			return true
		}
	}
	return false
}
