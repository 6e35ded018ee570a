package get_office_availability

import "errors"

var (
	// ErrOfficeNotFound офис не найден или недоступен для бронирования
	ErrOfficeNotFound = errors.New("get_office_availability: office not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_office_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_office_availability: internal error")
)
