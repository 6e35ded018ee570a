package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/internal/service/reservations/models"
)

// ListResponse HTTP response model
type ListResponse struct {
	Data []models.ReservationResponse `json:"data"`
	Meta Meta                         `json:"meta"`
}

// Meta пагинация
type Meta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// listQuery разобранные query параметры
type listQuery struct {
	status    *string
	officeID  *int64
	visitorID *int64
	fromDate  *time.Time
	toDate    *time.Time
	page      int
}

// parseQuery разбирает типы параметров; смысловые проверки делает сервис
func parseQuery(values url.Values) (*listQuery, error) {
	q := &listQuery{}

	if status := values.Get("status"); status != "" {
		q.status = &status
	}

	var err error
	if q.officeID, err = parseID(values, "office_id"); err != nil {
		return nil, err
	}
	if q.visitorID, err = parseID(values, "visitor_id"); err != nil {
		return nil, err
	}
	if q.fromDate, err = parseDate(values, "from_date"); err != nil {
		return nil, err
	}
	if q.toDate, err = parseDate(values, "to_date"); err != nil {
		return nil, err
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("page must be a positive integer")
		}
		q.page = page
	}

	return q, nil
}

func parseID(values url.Values, key string) (*int64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", key)
	}
	return &id, nil
}

func parseDate(values url.Values, key string) (*time.Time, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}

	date, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in format YYYY-MM-DD", key)
	}
	return &date, nil
}

func toListResponse(result *models.ReservationListResponse) *ListResponse {
	return &ListResponse{
		Data: result.Reservations,
		Meta: Meta{
			Page:    result.Page,
			PerPage: result.PerPage,
			Total:   result.Total,
		},
	}
}
