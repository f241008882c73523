package domain

import "time"

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравниваются календарные компоненты, а не моменты времени:
// запрошенная дата наивная, "сегодня" определяется в часовом поясе мастера
func IsDateInPast(date, now time.Time) bool {
	if date.Year() != now.Year() {
		return date.Year() < now.Year()
	}
	if date.Month() != now.Month() {
		return date.Month() < now.Month()
	}
	return date.Day() < now.Day()
}

// LocationOrUTC возвращает часовой пояс по IANA имени
// При пустом или неизвестном значении используется UTC
func LocationOrUTC(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
