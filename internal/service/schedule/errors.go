package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у мастера нет расписания
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
