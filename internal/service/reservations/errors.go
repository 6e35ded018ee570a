package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied пользователь не посетитель и не хост офиса
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel чужое бронирование, уже отменено или уже началось.
	// Причины намеренно не различаются в ответе.
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
