package reservations

import (
	"context"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, int, error)
	Cancel(ctx context.Context, id int64) (time.Time, error)
}

// OfficeRepository интерфейс чтения офисов
type OfficeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

// Notifier уведомление хоста об отмене
type Notifier interface {
	NotifyReservationCancelled(ctx context.Context, reservation *domain.Reservation, hostID int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
