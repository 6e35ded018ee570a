package get_office_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

// resolveWindow подставляет окно по умолчанию и проверяет границы
func resolveWindow(req *Request, today time.Time) (time.Time, time.Time, error) {
	from := today
	if req.From != nil {
		from = domain.DateOf(*req.From)
	}

	to := from.AddDate(0, 0, domain.DefaultAvailabilityWindowDays)
	if req.To != nil {
		to = domain.DateOf(*req.To)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.FieldToDate,
			"The to date must be a date after from date.", ErrInvalidInput)
	}

	if domain.DaysInclusive(from, to) > domain.MaxAvailabilityWindowDays {
		return time.Time{}, time.Time{}, domain.NewValidationError(domain.FieldToDate,
			fmt.Sprintf("The window must not exceed %d days.", domain.MaxAvailabilityWindowDays), ErrInvalidInput)
	}

	return from, to, nil
}

// mergeRanges склеивает пересекающиеся и соседние диапазоны и обрезает их по окну.
// Бронирования должны быть отсортированы по дате начала.
func mergeRanges(reservations []*domain.Reservation, from, to time.Time) []DateRange {
	ranges := make([]DateRange, 0, len(reservations))

	for _, r := range reservations {
		start, end := domain.DateOf(r.StartDate), domain.DateOf(r.EndDate)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if end.Before(start) {
			continue
		}

		if n := len(ranges); n > 0 && !start.After(ranges[n-1].EndDate.AddDate(0, 0, 1)) {
			if end.After(ranges[n-1].EndDate) {
				ranges[n-1].EndDate = end
			}
			continue
		}

		ranges = append(ranges, DateRange{StartDate: start, EndDate: end})
	}

	return ranges
}
