package get_office_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	officeRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/office"
)

// UseCase use case для получения занятых дат офиса
type UseCase struct {
	reservationRepo ReservationRepository
	officeRepo      OfficeRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	officeRepo OfficeRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		officeRepo:      officeRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute возвращает занятые диапазоны дат офиса.
// Данные снимаются без блокировки и могут устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOfficeAvailability: office=%d", req.OfficeID)

	if req.OfficeID <= 0 {
		return nil, fmt.Errorf("%w: officeID must be positive", ErrInvalidInput)
	}

	today := domain.Today(uc.timeProvider.Now(), uc.location)
	from, to, err := resolveWindow(req, today)
	if err != nil {
		uc.logger.Warn("GetOfficeAvailability: validation failed: %v", err)
		return nil, err
	}

	// офис и его бронирования читаются одной read-only транзакцией
	var (
		office       *domain.Office
		reservations []*domain.Reservation
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		office, err = uc.officeRepo.GetByID(txCtx, req.OfficeID)
		if err != nil {
			if errors.Is(err, officeRepo.ErrOfficeNotFound) {
				uc.logger.Warn("GetOfficeAvailability: office id=%d not found", req.OfficeID)
				return ErrOfficeNotFound
			}
			uc.logger.Error("GetOfficeAvailability: failed to get office id=%d: %v", req.OfficeID, err)
			return fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
		}

		// скрытые и неодобренные офисы не показываем
		if !office.IsBookable() {
			uc.logger.Warn("GetOfficeAvailability: office id=%d is not bookable", req.OfficeID)
			return ErrOfficeNotFound
		}

		reservations, err = uc.reservationRepo.ListActiveBetween(txCtx, office.ID, from, to)
		if err != nil {
			uc.logger.Error("GetOfficeAvailability: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOfficeNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetOfficeAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	occupied := mergeRanges(reservations, from, to)

	uc.logger.Info("GetOfficeAvailability: office=%d, %d occupied ranges between %s and %s",
		office.ID, len(occupied), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return &Response{
		OfficeID: office.ID,
		From:     from,
		To:       to,
		Occupied: occupied,
	}, nil
}
