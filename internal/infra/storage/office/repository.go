package office

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/pkg/dbmetrics"
	"github.com/m04kA/OfficeBookingService/pkg/psqlbuilder"
)

const (
	tableOffices = "offices"
	// офисы удаляются мягко
	columnDeletedAt = "deleted_at"
)

var officeColumns = []string{
	"id",
	"user_id",
	"title",
	"price_per_day",
	"monthly_discount",
	"is_hidden",
	"approval_status",
}

// Repository читает офисы. Таблицу offices ведёт сервис каталога, здесь она только для чтения.
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает офис по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(officeColumns...).
		From(tableOffices).
		Where(squirrel.Eq{"id": id}).
		Where(columnDeletedAt + " IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var office domain.Office
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&office.ID,
		&office.UserID,
		&office.Title,
		&office.PricePerDay,
		&office.MonthlyDiscount,
		&office.IsHidden,
		&office.ApprovalStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan office: %v", ErrScanRow, err)
	}

	return &office, nil
}
