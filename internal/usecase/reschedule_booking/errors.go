package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда запрос пришел не от участника бронирования
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrNotReschedulable возвращается, когда статус не допускает перенос
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrSlotNotAvailable возвращается, когда новый слот занят или вне сетки
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrPastDateRequested возвращается при переносе на прошедшую дату
	ErrPastDateRequested = errors.New("reschedule_booking: requested date is in the past")

	// ErrDateTooFarInFuture возвращается при выходе за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is beyond the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
