package create_reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

const (
	lockKeyPrefix        = "reservations_office_"
	wifiPasswordLength   = 16
	wifiPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VisitorID <= 0 {
		return fmt.Errorf("%w: visitorID must be positive", ErrInvalidInput)
	}

	if req.OfficeID <= 0 {
		return domain.NewValidationError(domain.FieldOfficeID, "Invalid office_id", ErrInvalidReference)
	}

	if req.StartDate.IsZero() {
		return domain.NewValidationError(domain.FieldStartDate, "The start date field is required.", ErrInvalidStartDate)
	}

	if req.EndDate.IsZero() {
		return domain.NewValidationError(domain.FieldEndDate, "The end date field is required.", ErrInvalidEndDate)
	}

	return nil
}

// validateOffice проверки офиса: не свой и доступен для бронирования
func validateOffice(office *domain.Office, visitorID int64) error {
	if office.IsOwnedBy(visitorID) {
		return domain.NewValidationError(domain.FieldOfficeID,
			"You cannot make a reservation on your own office", ErrSelfReservation)
	}

	if !office.IsBookable() {
		return domain.NewValidationError(domain.FieldOfficeID,
			"You cannot make a reservation on a hidden office", ErrOfficeUnavailable)
	}

	return nil
}

// validateDates дата начала строго после сегодня, пребывание не короче двух дней
func validateDates(startDate, endDate, today time.Time) error {
	if !startDate.After(today) {
		return domain.NewValidationError(domain.FieldStartDate,
			"The start date must be a date after today.", ErrInvalidStartDate)
	}

	if !endDate.After(startDate) || domain.DaysInclusive(startDate, endDate) < domain.MinStayDays {
		return domain.NewValidationError(domain.FieldEndDate,
			"The end date must be a date after start date.", ErrInvalidEndDate)
	}

	return nil
}

func conflictError() error {
	return domain.NewValidationError(domain.FieldOfficeID,
		"You cannot make a reservation during this time", ErrBookingConflict)
}

// lockKey ключ блокировки офиса
func lockKey(officeID int64) string {
	return lockKeyPrefix + strconv.FormatInt(officeID, 10)
}

// newWifiPassword случайный секрет доступа на время пребывания: 16 символов [A-Za-z0-9]
func newWifiPassword() (string, error) {
	alphabetSize := big.NewInt(int64(len(wifiPasswordAlphabet)))

	password := make([]byte, wifiPasswordLength)
	for i := range password {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		password[i] = wifiPasswordAlphabet[n.Int64()]
	}

	return string(password), nil
}
