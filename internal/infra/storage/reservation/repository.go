package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/pkg/dbmetrics"
	"github.com/m04kA/OfficeBookingService/pkg/psqlbuilder"
)

const (
	tableReservations = "reservations r"
	tableOffices      = "offices o"

	// exclusion_violation: сработал reservations_no_overlap
	pgExclusionViolation = pq.ErrorCode("23P01")
)

var reservationColumns = []string{
	"r.id",
	"r.user_id",
	"r.office_id",
	"r.start_date",
	"r.end_date",
	"r.status",
	"r.price",
	"r.wifi_password",
	"r.created_at",
	"r.updated_at",
}

var insertColumns = []string{
	"user_id",
	"office_id",
	"start_date",
	"end_date",
	"status",
	"price",
	"wifi_password",
}

// Repository репозиторий бронирований (Postgres)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте есть транзакция (txmanager), запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(insertColumns...).
		Values(
			reservation.UserID,
			reservation.OfficeID,
			reservation.StartDate,
			reservation.EndDate,
			reservation.Status,
			reservation.Price,
			reservation.WifiPassword,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return nil, fmt.Errorf("%w: Create - office %d: %v", ErrOverlap, reservation.OfficeID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// ExistsActiveBetween проверяет, есть ли у офиса активное бронирование,
// пересекающее [startDate, endDate] включительно.
// Вызывается под блокировкой офиса, непосредственно перед вставкой.
func (r *Repository) ExistsActiveBetween(ctx context.Context, officeID int64, startDate, endDate time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableReservations).
		Where(squirrel.Eq{"r.office_id": officeID}).
		Where(squirrel.Eq{"r.status": domain.StatusActive}).
		Where(overlapCondition(startDate, endDate)).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveBetween - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveBetween - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListActiveBetween возвращает активные бронирования офиса, пересекающие диапазон, по возрастанию даты начала
func (r *Repository) ListActiveBetween(ctx context.Context, officeID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"r.office_id": officeID}).
		Where(squirrel.Eq{"r.status": domain.StatusActive}).
		Where(overlapCondition(from, to)).
		OrderBy("r.start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List возвращает страницу бронирований по фильтру и общее количество подходящих записей.
//
// UserID - бронирования посетителя, HostID - бронирования по офисам хоста (JOIN offices).
// FromDate/ToDate выбирают бронирования, пересекающие диапазон.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(tableReservations), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute count query: %v", ErrExecQuery, err)
	}

	selectBuilder := applyFilter(psqlbuilder.Select(reservationColumns...).From(tableReservations), filter).
		OrderBy("r.start_date ASC", "r.id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// Cancel переводит активное бронирование в статус cancelled.
// Цена и даты не меняются. Если бронирование уже не активно - ErrNotActive.
func (r *Repository) Cancel(ctx context.Context, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotActive
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// overlapCondition условие пересечения включительных диапазонов:
// start_date <= to AND end_date >= from
func overlapCondition(from, to time.Time) squirrel.And {
	return squirrel.And{
		squirrel.LtOrEq{"r.start_date": to},
		squirrel.GtOrEq{"r.end_date": from},
	}
}

func applyFilter(builder squirrel.SelectBuilder, filter domain.ReservationsFilter) squirrel.SelectBuilder {
	if filter.HostID != nil {
		builder = builder.
			Join(tableOffices + " ON o.id = r.office_id").
			Where(squirrel.Eq{"o.user_id": *filter.HostID})
	}
	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.OfficeID != nil {
		builder = builder.Where(squirrel.Eq{"r.office_id": *filter.OfficeID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.FromDate != nil && filter.ToDate != nil {
		builder = builder.Where(overlapCondition(*filter.FromDate, *filter.ToDate))
	}
	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.OfficeID,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.Status,
		&reservation.Price,
		&reservation.WifiPassword,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.StartDate = domain.DateOf(reservation.StartDate)
	reservation.EndDate = domain.DateOf(reservation.EndDate)
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
