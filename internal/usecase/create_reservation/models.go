package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	VisitorID int64     // ID посетителя (из аутентификации, не из тела запроса)
	OfficeID  int64     // ID офиса
	StartDate time.Time // Дата заезда (без времени)
	EndDate   time.Time // Дата выезда включительно
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	UserID       int64
	OfficeID     int64
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	Price        int64
	WifiPassword string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Options параметры блокировки и календаря
type Options struct {
	LockTTL  time.Duration  // время жизни блокировки, если владелец упал
	LockWait time.Duration  // сколько ждать занятую блокировку
	Location *time.Location // временная зона, в которой считается "сегодня"
}
