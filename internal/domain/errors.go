package domain

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректной конфигурации рабочего дня
	// Трактуется как отсутствие доступности, а не как фатальная ошибка
	ErrInvalidSchedule = errors.New("domain: invalid schedule configuration")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса бронирования
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")
)
