package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

func TestRespondFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	kind := fmt.Errorf("kind")

	err := fmt.Errorf("wrapped: %w", domain.NewValidationError("office_id", "Invalid office_id", kind))
	ok := RespondFieldError(rec, err)

	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid office_id", body.Message)
	assert.Equal(t, map[string][]string{"office_id": {"Invalid office_id"}}, body.Errors)
}

func TestRespondFieldError_NotValidation(t *testing.T) {
	rec := httptest.NewRecorder()

	assert.False(t, RespondFieldError(rec, fmt.Errorf("boom")))
	assert.Zero(t, rec.Body.Len())
}

func TestRespondServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondServiceUnavailable(rec, 3)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"please retry"}`, rec.Body.String())
}

func TestValidate(t *testing.T) {
	type request struct {
		OfficeID  int64  `json:"office_id" validate:"required,gt=0"`
		StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	}

	assert.Nil(t, Validate(&request{OfficeID: 1, StartDate: "2026-11-01"}))

	// оба поля невалидны, в ответ попадает только первое
	errs := Validate(&request{StartDate: "01.11.2026"})
	assert.Equal(t, map[string][]string{"office_id": {"The office id field is required."}}, errs)

	errs = Validate(&request{OfficeID: 1, StartDate: "01.11.2026"})
	assert.Equal(t, map[string][]string{"start_date": {"The start date does not match the format Y-m-d."}}, errs)
}
