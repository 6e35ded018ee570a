package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrNotActive возвращается при попытке отменить неактивное бронирование
	ErrNotActive = errors.New("reservation.repository: reservation is not active")

	// ErrOverlap возвращается, когда база отклонила пересекающееся активное бронирование
	ErrOverlap = errors.New("reservation.repository: overlapping active reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
