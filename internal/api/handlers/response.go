package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

const (
	msgInternalError      = "internal server error"
	msgValidationFailed   = "The given data was invalid."
	msgServiceUnavailable = "please retry"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// RespondJSON пишет JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError ответ с сообщением об ошибке
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondServiceUnavailable 503 с заголовком Retry-After (в секундах)
func RespondServiceUnavailable(w http.ResponseWriter, retryAfterSeconds int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

// RespondValidationErrors 422 с ошибками по полям
func RespondValidationErrors(w http.ResponseWriter, fieldErrors map[string][]string) {
	// одно поле - его сообщение и есть общее
	message := msgValidationFailed
	if len(fieldErrors) == 1 {
		for _, messages := range fieldErrors {
			if len(messages) > 0 {
				message = messages[0]
			}
		}
	}

	RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Message: message,
		Errors:  fieldErrors,
	})
}

// RespondFieldError отвечает 422, если err - отказ по полю.
// Возвращает false, если err не *domain.ValidationError, тогда ответ не записан.
func RespondFieldError(w http.ResponseWriter, err error) bool {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}

	RespondValidationErrors(w, map[string][]string{
		validationErr.Field: {validationErr.Message},
	})
	return true
}

// DecodeJSON разбирает тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
