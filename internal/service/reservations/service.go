package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	officeRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/office"
	reservationRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/OfficeBookingService/internal/service/reservations/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	officeRepo      OfficeRepository
	notifier        Notifier
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	officeRepo OfficeRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		reservationRepo: reservationRepo,
		officeRepo:      officeRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видят посетитель и хост офиса; пароль wifi отдаётся только посетителю.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if reservation.UserID == userID {
		return models.FromDomainReservation(reservation, true), nil
	}

	office, err := s.officeRepo.GetByID(ctx, reservation.OfficeID)
	if err != nil {
		if errors.Is(err, officeRepo.ErrOfficeNotFound) {
			s.logger.Warn("GetByID: office id=%d of reservation id=%d not found", reservation.OfficeID, id)
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetByID: failed to get office id=%d: %v", reservation.OfficeID, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get office: %v", ErrInternal, err)
	}

	if !office.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d for host=%d", id, userID)
	return models.FromDomainReservation(reservation, false), nil
}

// ListVisitorReservations бронирования посетителя, по 20 на страницу
func (s *Service) ListVisitorReservations(ctx context.Context, req *models.ListVisitorReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListVisitorReservations: user=%d, page=%d", req.UserID, req.Page)

	filter, page, err := buildFilter(listParams{
		status:   req.Status,
		fromDate: req.FromDate,
		toDate:   req.ToDate,
		page:     req.Page,
	})
	if err != nil {
		s.logger.Warn("ListVisitorReservations: invalid filter for user=%d: %v", req.UserID, err)
		return nil, err
	}

	filter.UserID = &req.UserID
	filter.OfficeID = req.OfficeID

	return s.list(ctx, "ListVisitorReservations", filter, page, true)
}

// ListHostReservations бронирования по всем офисам хоста.
// Хост не видит паролей wifi своих посетителей.
func (s *Service) ListHostReservations(ctx context.Context, req *models.ListHostReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListHostReservations: host=%d, page=%d", req.HostID, req.Page)

	filter, page, err := buildFilter(listParams{
		status:   req.Status,
		fromDate: req.FromDate,
		toDate:   req.ToDate,
		page:     req.Page,
	})
	if err != nil {
		s.logger.Warn("ListHostReservations: invalid filter for host=%d: %v", req.HostID, err)
		return nil, err
	}

	filter.HostID = &req.HostID
	filter.UserID = req.VisitorID
	filter.OfficeID = req.OfficeID

	return s.list(ctx, "ListHostReservations", filter, page, false)
}

// Cancel отменяет бронирование посетителем.
// Отменить можно только своё активное бронирование, которое ещё не началось.
func (s *Service) Cancel(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, actorID)

	reservation, err := s.getReservation(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	today := domain.Today(s.timeProvider.Now(), s.location)

	if reservation.UserID != actorID || !reservation.CanBeCancelled(today) {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled by user=%d, owner=%d, status=%s, start=%s",
			id, actorID, reservation.UserID, reservation.Status, reservation.StartDate.Format(domain.DateFormat))
		return nil, cannotCancelError()
	}

	updatedAt, err := s.reservationRepo.Cancel(ctx, id)
	if err != nil {
		// параллельная отмена успела раньше
		if errors.Is(err, reservationRepo.ErrNotActive) {
			s.logger.Warn("Cancel: reservation id=%d is no longer active", id)
			return nil, cannotCancelError()
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	reservation.Status = domain.StatusCancelled
	reservation.UpdatedAt = updatedAt

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)

	s.notifyHost(ctx, reservation)

	return models.FromDomainReservation(reservation, true), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.ReservationsFilter, page int, withSecret bool) (*models.ReservationListResponse, error) {
	reservations, total, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d of %d reservations", op, len(reservations), total)

	return &models.ReservationListResponse{
		Reservations: models.FromDomainReservationList(reservations, withSecret),
		Page:         page,
		PerPage:      filter.Limit,
		Total:        total,
	}, nil
}

// notifyHost уведомляет хоста об отмене, ошибки только логируются
func (s *Service) notifyHost(ctx context.Context, reservation *domain.Reservation) {
	ctx = context.WithoutCancel(ctx)

	office, err := s.officeRepo.GetByID(ctx, reservation.OfficeID)
	if err != nil {
		s.logger.Warn("Cancel: cannot notify host, office id=%d: %v", reservation.OfficeID, err)
		return
	}

	if err := s.notifier.NotifyReservationCancelled(ctx, reservation, office.UserID); err != nil {
		s.logger.Error("Cancel: failed to notify host=%d about reservation id=%d: %v", office.UserID, reservation.ID, err)
	}
}

func cannotCancelError() error {
	return domain.NewValidationError(domain.FieldReservation, "You cannot cancel this reservation", ErrCannotCancel)
}
