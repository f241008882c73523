package create_booking

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот занят,
	// не попадает в сетку расписания или нарушает минимальное время до начала
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPastDateRequested возвращается при попытке бронирования на прошедшую дату
	ErrPastDateRequested = errors.New("create_booking: requested date is in the past")

	// ErrDateTooFarInFuture возвращается при выходе за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is beyond the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
