package domain

import "time"

const day = 24 * time.Hour

// DateOf отбрасывает время и возвращает полночь UTC той же календарной даты
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today календарная дата "сегодня" в указанной временной зоне
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DaysInclusive число календарных дней в диапазоне [start, end].
// Для end < start результат <= 0.
func DaysInclusive(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start))/day) + 1
}

// RangesOverlap пересечение двух включительных диапазонов дат.
// Касание в один общий день считается пересечением.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOf(aStart).After(DateOf(bEnd)) && !DateOf(aEnd).Before(DateOf(bStart))
}
