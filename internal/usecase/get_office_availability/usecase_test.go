package get_office_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	officeRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/office"
	"github.com/m04kA/OfficeBookingService/pkg/logger"
	"github.com/m04kA/OfficeBookingService/pkg/ptr"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) ListActiveBetween(ctx context.Context, officeID int64, from, to time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, officeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type MockOfficeRepository struct {
	mock.Mock
}

func (m *MockOfficeRepository) GetByID(ctx context.Context, id int64) (*domain.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Office), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type txMarker struct{}

// readOnlyTx помечает контекст, чтобы проверить, что чтения идут внутри транзакции
type readOnlyTx struct {
	calls int
	err   error
}

func (tx *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if tx.err != nil {
		return tx.err
	}
	return fn(context.WithValue(ctx, txMarker{}, true))
}

func inTx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Value(txMarker{}) != nil
	})
}

func newUseCase(reservations *MockReservationRepository, offices *MockOfficeRepository) *UseCase {
	return newUseCaseWithTx(reservations, offices, &readOnlyTx{})
}

func newUseCaseWithTx(reservations *MockReservationRepository, offices *MockOfficeRepository, tx *readOnlyTx) *UseCase {
	uc := NewUseCase(reservations, offices, tx, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{t: time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)}
	return uc
}

func approvedOffice() *domain.Office {
	return &domain.Office{ID: 10, UserID: 2, PricePerDay: 1000, ApprovalStatus: domain.ApprovalApproved}
}

func TestUseCase_Execute_DefaultWindow(t *testing.T) {
	reservations := new(MockReservationRepository)
	offices := new(MockOfficeRepository)
	uc := newUseCase(reservations, offices)

	from := date(2026, 10, 19)
	to := date(2027, 1, 17)

	offices.On("GetByID", mock.Anything, int64(10)).Return(approvedOffice(), nil)
	reservations.On("ListActiveBetween", mock.Anything, int64(10), from, to).Return([]*domain.Reservation{
		{StartDate: date(2026, 10, 1), EndDate: date(2026, 10, 21)},
		{StartDate: date(2026, 10, 22), EndDate: date(2026, 10, 25)},
		{StartDate: date(2026, 11, 1), EndDate: date(2026, 11, 3)},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{OfficeID: 10})

	require.NoError(t, err)
	assert.Equal(t, from, resp.From)
	assert.Equal(t, to, resp.To)
	assert.Equal(t, []DateRange{
		{StartDate: date(2026, 10, 19), EndDate: date(2026, 10, 25)},
		{StartDate: date(2026, 11, 1), EndDate: date(2026, 11, 3)},
	}, resp.Occupied)
	reservations.AssertExpectations(t)
}

func TestUseCase_Execute_HiddenOffice(t *testing.T) {
	reservations := new(MockReservationRepository)
	offices := new(MockOfficeRepository)
	uc := newUseCase(reservations, offices)

	hidden := approvedOffice()
	hidden.IsHidden = true
	offices.On("GetByID", mock.Anything, int64(10)).Return(hidden, nil)

	_, err := uc.Execute(context.Background(), &Request{OfficeID: 10})

	assert.ErrorIs(t, err, ErrOfficeNotFound)
	reservations.AssertNotCalled(t, "ListActiveBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		officeErr error
		wantErr   error
	}{
		{
			name:    "to before from",
			req:     &Request{OfficeID: 10, From: ptr.Ptr(date(2026, 11, 5)), To: ptr.Ptr(date(2026, 11, 1))},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "window too wide",
			req:     &Request{OfficeID: 10, From: ptr.Ptr(date(2026, 11, 1)), To: ptr.Ptr(date(2027, 12, 1))},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "office not found",
			req:       &Request{OfficeID: 10},
			officeErr: officeRepo.ErrOfficeNotFound,
			wantErr:   ErrOfficeNotFound,
		},
		{
			name:      "office storage failure",
			req:       &Request{OfficeID: 10},
			officeErr: errors.New("timeout"),
			wantErr:   ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offices := new(MockOfficeRepository)
			uc := newUseCase(new(MockReservationRepository), offices)
			offices.On("GetByID", mock.Anything, int64(10)).Return(nil, tt.officeErr)

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_ReadsInsideReadOnlyTransaction(t *testing.T) {
	reservations := new(MockReservationRepository)
	offices := new(MockOfficeRepository)
	tx := &readOnlyTx{}
	uc := newUseCaseWithTx(reservations, offices, tx)

	offices.On("GetByID", inTx(), int64(10)).Return(approvedOffice(), nil)
	reservations.On("ListActiveBetween", inTx(), int64(10), mock.Anything, mock.Anything).
		Return([]*domain.Reservation{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{OfficeID: 10})

	require.NoError(t, err)
	assert.Empty(t, resp.Occupied)
	assert.Equal(t, 1, tx.calls)
	offices.AssertExpectations(t)
	reservations.AssertExpectations(t)
}

func TestUseCase_Execute_BeginFailure(t *testing.T) {
	reservations := new(MockReservationRepository)
	offices := new(MockOfficeRepository)
	uc := newUseCaseWithTx(reservations, offices, &readOnlyTx{err: errors.New("txmanager: failed to begin transaction")})

	_, err := uc.Execute(context.Background(), &Request{OfficeID: 10})

	assert.ErrorIs(t, err, ErrInternal)
	offices.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMergeRanges(t *testing.T) {
	from, to := date(2026, 11, 1), date(2026, 11, 30)

	got := mergeRanges([]*domain.Reservation{
		{StartDate: date(2026, 11, 2), EndDate: date(2026, 11, 4)},
		{StartDate: date(2026, 11, 5), EndDate: date(2026, 11, 6)},
		{StartDate: date(2026, 11, 8), EndDate: date(2026, 11, 9)},
		{StartDate: date(2026, 11, 28), EndDate: date(2026, 12, 5)},
	}, from, to)

	assert.Equal(t, []DateRange{
		{StartDate: date(2026, 11, 2), EndDate: date(2026, 11, 6)},
		{StartDate: date(2026, 11, 8), EndDate: date(2026, 11, 9)},
		{StartDate: date(2026, 11, 28), EndDate: date(2026, 11, 30)},
	}, got)

	assert.Empty(t, mergeRanges(nil, from, to))
}
