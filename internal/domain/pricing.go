package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidDailyRate  = errors.New("pricing: daily rate must be positive")
	ErrInvalidDiscount   = errors.New("pricing: monthly discount must be within [0, 90]")
	ErrInvalidStayLength = errors.New("pricing: end date is before start date")
)

// ComputePrice считает стоимость пребывания.
// Дни считаются включительно; при пребывании от 28 дней применяется месячная скидка,
// скидка округляется вниз в пользу хоста.
func ComputePrice(startDate, endDate time.Time, dailyRate int64, monthlyDiscountPercent int) (int64, error) {
	if dailyRate <= 0 {
		return 0, ErrInvalidDailyRate
	}
	if monthlyDiscountPercent < 0 || monthlyDiscountPercent > MaxMonthlyDiscountPercent {
		return 0, ErrInvalidDiscount
	}

	days := DaysInclusive(startDate, endDate)
	if days < 1 {
		return 0, ErrInvalidStayLength
	}

	price := int64(days) * dailyRate
	if days >= MonthlyDiscountThresholdDays && monthlyDiscountPercent > 0 {
		price -= price * int64(monthlyDiscountPercent) / 100
	}

	return price, nil
}
