package list_reservations

import (
	"context"

	"github.com/m04kA/OfficeBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListVisitorReservations(ctx context.Context, req *models.ListVisitorReservationsRequest) (*models.ReservationListResponse, error)
	ListHostReservations(ctx context.Context, req *models.ListHostReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
