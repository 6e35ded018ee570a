package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/api/middleware"
	"github.com/m04kA/OfficeBookingService/internal/domain"
	createReservation "github.com/m04kA/OfficeBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/OfficeBookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

func doRequest(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, 3, logger.NewNop())

	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, &createReservation.Request{
		VisitorID: 3,
		OfficeID:  10,
		StartDate: start,
		EndDate:   end,
	}).Return(&createReservation.Response{
		ID:           15,
		UserID:       3,
		OfficeID:     10,
		StartDate:    start,
		EndDate:      end,
		Status:       "active",
		Price:        3000,
		WifiPassword: "0123456789abcdef",
	}, nil)

	rec := doRequest(h, `{"office_id":10,"start_date":"2026-11-01","end_date":"2026-11-03"}`, 3)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(15), body.ID)
	assert.Equal(t, "2026-11-01", body.StartDate)
	assert.Equal(t, int64(3000), body.Price)
	assert.Equal(t, "0123456789abcdef", body.WifiPassword)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
		wantField  string
	}{
		{
			name:       "malformed json",
			body:       `{"office_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			body:       `{"office_id":10}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "start_date",
		},
		{
			name:       "missing dates without office",
			body:       `{"end_date":"2026-11-03"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "office_id",
		},
		{
			name:       "bad date format",
			body:       `{"office_id":10,"start_date":"01.11.2026","end_date":"2026-11-03"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "start_date",
		},
		{
			name: "conflict",
			body: `{"office_id":10,"start_date":"2026-11-01","end_date":"2026-11-03"}`,
			ucErr: domain.NewValidationError(domain.FieldOfficeID,
				"You cannot make a reservation during this time", createReservation.ErrBookingConflict),
			wantStatus: http.StatusUnprocessableEntity,
			wantField:  "office_id",
		},
		{
			name:       "busy",
			body:       `{"office_id":10,"start_date":"2026-11-01","end_date":"2026-11-03"}`,
			ucErr:      createReservation.ErrBusy,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "internal",
			body:       `{"office_id":10,"start_date":"2026-11-01","end_date":"2026-11-03"}`,
			ucErr:      errors.Join(createReservation.ErrInternal, errors.New("db is down")),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			h := NewHandler(uc, 3, logger.NewNop())

			rec := doRequest(h, tt.body, 3)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "3", rec.Header().Get("Retry-After"))
			}
			if tt.wantField != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Len(t, body.Errors, 1)
				assert.Contains(t, body.Errors, tt.wantField)
			}
		})
	}
}

func TestHandler_Unauthenticated(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, 3, logger.NewNop())

	rec := doRequest(h, `{}`, 0)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
