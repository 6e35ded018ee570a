package get_office_availability

import (
	"github.com/m04kA/OfficeBookingService/internal/domain"
	getOfficeAvailability "github.com/m04kA/OfficeBookingService/internal/usecase/get_office_availability"
)

// OccupiedDatesResponse HTTP response model
type OccupiedDatesResponse struct {
	OfficeID int64       `json:"office_id"`
	From     string      `json:"from"`
	To       string      `json:"to"`
	Occupied []DateRange `json:"occupied"`
}

// DateRange занятый диапазон, обе даты включительно
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOfficeAvailability.Response) *OccupiedDatesResponse {
	occupied := make([]DateRange, 0, len(resp.Occupied))
	for _, r := range resp.Occupied {
		occupied = append(occupied, DateRange{
			StartDate: r.StartDate.Format(domain.DateFormat),
			EndDate:   r.EndDate.Format(domain.DateFormat),
		})
	}

	return &OccupiedDatesResponse{
		OfficeID: resp.OfficeID,
		From:     resp.From.Format(domain.DateFormat),
		To:       resp.To.Format(domain.DateFormat),
		Occupied: occupied,
	}
}
