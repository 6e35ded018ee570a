package domain

import "time"

// ReservationStatus статус бронирования. Переход возможен только active -> cancelled
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation бронирование офиса на диапазон дат [StartDate, EndDate] включительно
type Reservation struct {
	ID        int64
	UserID    int64 // посетитель
	OfficeID  int64
	StartDate time.Time
	EndDate   time.Time
	Status    ReservationStatus
	Price     int64 // вычисляется один раз при создании

	// WifiPassword секрет доступа к офису на время пребывания
	WifiPassword string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// HasStarted возвращает true, если дата начала уже в прошлом относительно today
func (r *Reservation) HasStarted(today time.Time) bool {
	return DateOf(r.StartDate).Before(DateOf(today))
}

// CanBeCancelled активное бронирование, которое ещё не началось
func (r *Reservation) CanBeCancelled(today time.Time) bool {
	return r.IsActive() && !r.HasStarted(today)
}

// Days количество календарных дней пребывания (включительно)
func (r *Reservation) Days() int {
	return DaysInclusive(r.StartDate, r.EndDate)
}

// Overlaps пересекается ли бронирование с диапазоном [start, end] (обе границы заняты)
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return RangesOverlap(r.StartDate, r.EndDate, start, end)
}

// IsValidReservationStatus проверяет строковое значение статуса
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case StatusActive, StatusCancelled:
		return true
	default:
		return false
	}
}

// ReservationsFilter фильтр для списков бронирований
type ReservationsFilter struct {
	UserID   *int64 // бронирования посетителя
	HostID   *int64 // бронирования по офисам хоста
	OfficeID *int64
	Status   *ReservationStatus

	// FromDate/ToDate задаются вместе; выбираются бронирования, пересекающие диапазон
	FromDate *time.Time
	ToDate   *time.Time

	Limit  int
	Offset int
}
