package get_office_availability

import (
	"context"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListActiveBetween активные бронирования офиса, пересекающие диапазон
	ListActiveBetween(ctx context.Context, officeID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// OfficeRepository интерфейс чтения офисов
type OfficeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

// TransactionManager интерфейс для работы с транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
