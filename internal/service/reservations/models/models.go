package models

import (
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/pkg/ptr"
)

// Request модели

// ListVisitorReservationsRequest бронирования посетителя
type ListVisitorReservationsRequest struct {
	UserID   int64
	OfficeID *int64
	Status   *string
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
}

// ListHostReservationsRequest бронирования по офисам хоста
type ListHostReservationsRequest struct {
	HostID    int64
	VisitorID *int64
	OfficeID  *int64
	Status    *string
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	OfficeID     int64     `json:"office_id"`
	StartDate    string    `json:"start_date"` // "2026-10-15"
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	Price        int64     `json:"price"`
	WifiPassword *string   `json:"wifi_password,omitempty"` // только для посетителя
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReservationListResponse страница бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse
	Page         int
	PerPage      int
	Total        int
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// withSecret - показывать ли пароль wifi (только посетителю).
func FromDomainReservation(r *domain.Reservation, withSecret bool) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		OfficeID:  r.OfficeID,
		StartDate: r.StartDate.Format(domain.DateFormat),
		EndDate:   r.EndDate.Format(domain.DateFormat),
		Status:    string(r.Status),
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if withSecret {
		resp.WifiPassword = ptr.Ptr(r.WifiPassword)
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, withSecret bool) []ReservationResponse {
	resp := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		resp = append(resp, *FromDomainReservation(r, withSecret))
	}
	return resp
}
