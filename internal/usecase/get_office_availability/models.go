package get_office_availability

import "time"

// Request модель запроса занятых дат офиса.
// Без From/To берётся окно от сегодня на DefaultAvailabilityWindowDays дней.
type Request struct {
	OfficeID int64
	From     *time.Time
	To       *time.Time
}

// Response занятые диапазоны внутри окна [From, To]
type Response struct {
	OfficeID int64
	From     time.Time
	To       time.Time
	Occupied []DateRange
}

// DateRange включительный диапазон занятых дат
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}
