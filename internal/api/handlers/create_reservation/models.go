package create_reservation

import (
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	createReservation "github.com/m04kA/OfficeBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	OfficeID  int64  `json:"office_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"` // "2026-10-15"
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	OfficeID     int64  `json:"office_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	Price        int64  `json:"price"`
	WifiPassword string `json:"wifi_password"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат дат уже проверен валидатором.
func (r *CreateReservationRequest) ToUseCaseRequest(visitorID int64) (*createReservation.Request, error) {
	startDate, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		VisitorID: visitorID,
		OfficeID:  r.OfficeID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		OfficeID:     resp.OfficeID,
		StartDate:    resp.StartDate.Format(domain.DateFormat),
		EndDate:      resp.EndDate.Format(domain.DateFormat),
		Status:       resp.Status,
		Price:        resp.Price,
		WifiPassword: resp.WifiPassword,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
