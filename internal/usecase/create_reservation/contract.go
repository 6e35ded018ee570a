package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/internal/infra/lock"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ExistsActiveBetween(ctx context.Context, officeID int64, startDate, endDate time.Time) (bool, error)
}

// OfficeRepository интерфейс чтения офисов
type OfficeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Office, error)
}

// Locker распределённая блокировка по ключу с ограниченным ожиданием
type Locker interface {
	Acquire(ctx context.Context, key string, ttl, wait time.Duration) (lock.Lock, error)
}

// Notifier уведомления посетителю и хосту о новом бронировании
type Notifier interface {
	NotifyReservationCreated(ctx context.Context, reservation *domain.Reservation, office *domain.Office) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики создания бронирований
type Metrics interface {
	RecordReservationOutcome(outcome string)
	ObserveLockWait(duration time.Duration, acquired bool)
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
