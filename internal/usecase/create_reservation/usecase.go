package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/internal/infra/lock"
	officeRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/office"
	reservationRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/OfficeBookingService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	officeRepo      OfficeRepository
	locker          Locker
	notifier        Notifier
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	opts            Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	officeRepo OfficeRepository,
	locker Locker,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		officeRepo:      officeRepo,
		locker:          locker,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		opts:            opts,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются под блокировкой офиса,
// уведомления отправляются после снятия блокировки и на результат не влияют.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: visitor=%d, office=%d, start=%s, end=%s",
		req.VisitorID, req.OfficeID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, uc.reject(err)
	}

	startDate := domain.DateOf(req.StartDate)
	endDate := domain.DateOf(req.EndDate)

	// 2. Получаем офис
	office, err := uc.officeRepo.GetByID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, officeRepo.ErrOfficeNotFound) {
			uc.logger.Warn("CreateReservation: office id=%d not found", req.OfficeID)
			return nil, uc.reject(domain.NewValidationError(domain.FieldOfficeID, "Invalid office_id", ErrInvalidReference))
		}
		uc.logger.Error("CreateReservation: failed to get office id=%d: %v", req.OfficeID, err)
		return nil, uc.fail(fmt.Errorf("%w: failed to get office: %v", ErrInternal, err))
	}

	// 3. Офис не свой, виден и одобрен
	if err := validateOffice(office, req.VisitorID); err != nil {
		uc.logger.Warn("CreateReservation: office id=%d rejected for visitor=%d: %v", office.ID, req.VisitorID, err)
		return nil, uc.reject(err)
	}

	// 4. Даты относительно "сегодня" в зоне сервиса
	today := domain.Today(uc.timeProvider.Now(), uc.opts.Location)
	if err := validateDates(startDate, endDate, today); err != nil {
		uc.logger.Warn("CreateReservation: dates rejected (today=%s): %v", today.Format(domain.DateFormat), err)
		return nil, uc.reject(err)
	}

	// 5. Критическая секция под блокировкой офиса
	created, err := uc.reserve(ctx, office, req.VisitorID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordReservationOutcome(metrics.OutcomeCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%d, price=%d", created.ID, created.Price)

	// 6. Уведомления: ошибки только логируются
	if err := uc.notifier.NotifyReservationCreated(context.WithoutCancel(ctx), created, office); err != nil {
		uc.logger.Error("CreateReservation: failed to notify about reservation id=%d: %v", created.ID, err)
	}

	return toResponse(created), nil
}

// reserve берёт блокировку офиса, проверяет пересечения и сохраняет бронирование.
// Блокировка снимается на любом пути выхода.
func (uc *UseCase) reserve(ctx context.Context, office *domain.Office, visitorID int64, startDate, endDate time.Time) (*domain.Reservation, error) {
	key := lockKey(office.ID)

	// отмена запроса клиентом не прерывает критическую секцию, ожидание ограничено только LockWait
	ctx = context.WithoutCancel(ctx)

	waitStarted := time.Now()
	held, err := uc.locker.Acquire(ctx, key, uc.opts.LockTTL, uc.opts.LockWait)
	uc.metrics.ObserveLockWait(time.Since(waitStarted), err == nil)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("CreateReservation: lock %s is busy after %s", key, uc.opts.LockWait)
			uc.metrics.RecordReservationOutcome(metrics.OutcomeBusy)
			return nil, ErrBusy
		}
		uc.logger.Error("CreateReservation: failed to acquire lock %s: %v", key, err)
		return nil, uc.fail(fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err))
	}
	defer func() {
		if err := held.Release(ctx); err != nil {
			uc.logger.Warn("CreateReservation: failed to release lock %s: %v", key, err)
		}
	}()

	var result *domain.Reservation

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Проверка пересечения с активными бронированиями
		conflict, err := uc.reservationRepo.ExistsActiveBetween(txCtx, office.ID, startDate, endDate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateReservation: office id=%d already reserved between %s and %s",
				office.ID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))
			return conflictError()
		}

		// 5.2. Цена считается один раз и дальше не меняется
		price, err := domain.ComputePrice(startDate, endDate, office.PricePerDay, office.MonthlyDiscount)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to compute price for office id=%d: %v", office.ID, err)
			return fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
		}

		wifiPassword, err := newWifiPassword()
		if err != nil {
			uc.logger.Error("CreateReservation: failed to generate wifi password: %v", err)
			return fmt.Errorf("%w: failed to generate wifi password: %v", ErrInternal, err)
		}

		// 5.3. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			UserID:       visitorID,
			OfficeID:     office.ID,
			StartDate:    startDate,
			EndDate:      endDate,
			Status:       domain.StatusActive,
			Price:        price,
			WifiPassword: wifiPassword,
		})
		if errors.Is(err, reservationRepo.ErrOverlap) {
			// пересечение поймал constraint reservations_no_overlap
			uc.logger.Warn("CreateReservation: office id=%d overlap rejected by database: %v", office.ID, err)
			return conflictError()
		}
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			uc.metrics.RecordReservationOutcome(metrics.OutcomeConflict)
			return nil, err
		}
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, uc.fail(err)
	}

	return result, nil
}

func (uc *UseCase) reject(err error) error {
	uc.metrics.RecordReservationOutcome(metrics.OutcomeRejected)
	return err
}

func (uc *UseCase) fail(err error) error {
	uc.metrics.RecordReservationOutcome(metrics.OutcomeFailed)
	return err
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:           r.ID,
		UserID:       r.UserID,
		OfficeID:     r.OfficeID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Status:       string(r.Status),
		Price:        r.Price,
		WifiPassword: r.WifiPassword,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
