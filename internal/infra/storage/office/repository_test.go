package office

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := regexp.QuoteMeta("SELECT id, user_id, title, price_per_day, monthly_discount, is_hidden, approval_status FROM offices WHERE id = $1 AND deleted_at IS NULL")
	mock.ExpectQuery(query).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "price_per_day", "monthly_discount", "is_hidden", "approval_status"}).
			AddRow(int64(10), int64(2), "Loft", int64(1000), 10, false, "approved"))
	mock.ExpectQuery(query).
		WithArgs(int64(11)).
		WillReturnError(sql.ErrNoRows)

	repo := NewRepository(db)

	office, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), office.UserID)
	assert.Equal(t, int64(1000), office.PricePerDay)
	assert.Equal(t, 10, office.MonthlyDiscount)
	assert.Equal(t, domain.ApprovalApproved, office.ApprovalStatus)
	assert.True(t, office.IsBookable())

	_, err = repo.GetByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrOfficeNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
