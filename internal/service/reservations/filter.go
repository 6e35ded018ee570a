package reservations

import (
	"fmt"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

type listParams struct {
	status   *string
	fromDate *time.Time
	toDate   *time.Time
	page     int
}

// buildFilter проверяет общие параметры списка и переводит страницу в limit/offset.
// from_date и to_date задаются только вместе, to_date строго позже from_date.
func buildFilter(params listParams) (domain.ReservationsFilter, int, error) {
	var filter domain.ReservationsFilter

	if params.status != nil {
		if !domain.IsValidReservationStatus(*params.status) {
			return filter, 0, domain.NewValidationError(domain.FieldStatus, "The selected status is invalid.", ErrInvalidInput)
		}
		status := domain.ReservationStatus(*params.status)
		filter.Status = &status
	}

	switch {
	case params.fromDate != nil && params.toDate == nil:
		return filter, 0, domain.NewValidationError(domain.FieldToDate,
			"The to date field is required when from date is present.", ErrInvalidInput)
	case params.fromDate == nil && params.toDate != nil:
		return filter, 0, domain.NewValidationError(domain.FieldFromDate,
			"The from date field is required when to date is present.", ErrInvalidInput)
	case params.fromDate != nil && params.toDate != nil:
		from, to := domain.DateOf(*params.fromDate), domain.DateOf(*params.toDate)
		if !to.After(from) {
			return filter, 0, domain.NewValidationError(domain.FieldToDate,
				"The to date must be a date after from date.", ErrInvalidInput)
		}
		filter.FromDate = &from
		filter.ToDate = &to
	}

	page := params.page
	if page < 1 {
		page = domain.DefaultPage
	}
	if page > domain.MaxPage {
		return filter, 0, domain.NewValidationError(domain.FieldPage,
			fmt.Sprintf("The page must not be greater than %d.", domain.MaxPage), ErrInvalidInput)
	}

	filter.Limit = domain.DefaultPageSize
	filter.Offset = (page - 1) * domain.DefaultPageSize

	return filter, page, nil
}
