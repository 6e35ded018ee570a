package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidReference офис не найден
	ErrInvalidReference = errors.New("create_reservation: invalid office reference")

	// ErrSelfReservation хост пытается забронировать свой офис
	ErrSelfReservation = errors.New("create_reservation: cannot reserve own office")

	// ErrOfficeUnavailable офис скрыт или не прошёл модерацию
	ErrOfficeUnavailable = errors.New("create_reservation: office is hidden or not approved")

	// ErrInvalidStartDate дата начала не позже сегодняшней
	ErrInvalidStartDate = errors.New("create_reservation: start date must be after today")

	// ErrInvalidEndDate дата окончания не позже даты начала
	ErrInvalidEndDate = errors.New("create_reservation: end date must be after start date")

	// ErrBookingConflict даты пересекаются с активным бронированием офиса
	ErrBookingConflict = errors.New("create_reservation: office is already reserved for these dates")

	// ErrBusy блокировка офиса не получена за время ожидания, запрос можно повторить
	ErrBusy = errors.New("create_reservation: office is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
