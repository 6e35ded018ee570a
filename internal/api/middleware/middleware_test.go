package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/OfficeBookingService/internal/integrations/userservice"
	"github.com/m04kA/OfficeBookingService/pkg/logger"
)

type MockPermissionChecker struct {
	mock.Mock
}

func (m *MockPermissionChecker) HasPermission(ctx context.Context, userID int64, permission string) (bool, error) {
	args := m.Called(ctx, userID, permission)
	return args.Bool(0), args.Error(1)
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strconv.FormatInt(userID, 10)))
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid", header: "42", wantStatus: http.StatusOK},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not a number", header: "abc", wantStatus: http.StatusUnauthorized},
		{name: "zero", header: "0", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(logger.NewNop())(http.HandlerFunc(echoUserID))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name       string
		allowed    bool
		err        error
		wantStatus int
	}{
		{name: "allowed", allowed: true, wantStatus: http.StatusOK},
		{name: "denied", allowed: false, wantStatus: http.StatusForbidden},
		{name: "user service down", err: userservice.ErrUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "broken response", err: userservice.ErrInvalidResponse, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockPermissionChecker)
			checker.On("HasPermission", mock.Anything, int64(7), "reservation.store").Return(tt.allowed, tt.err)

			handler := RequirePermission(checker, "reservation.store", logger.NewNop())(http.HandlerFunc(echoUserID))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
			req = req.WithContext(WithUserID(req.Context(), 7))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			checker.AssertExpectations(t)
		})
	}
}

func TestRequirePermission_WithoutAuth(t *testing.T) {
	checker := new(MockPermissionChecker)
	handler := RequirePermission(checker, "reservation.store", logger.NewNop())(http.HandlerFunc(echoUserID))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	checker.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	requests []recordedRequest
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/reservations/{reservationId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/15", nil))

	assert.Equal(t, []recordedRequest{
		{method: http.MethodGet, route: "/api/v1/reservations/{reservationId}", status: http.StatusNotFound},
	}, m.requests)
}
