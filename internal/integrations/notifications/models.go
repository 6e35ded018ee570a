package notifications

import "time"

// Типы событий. Тип же используется как subject в NATS (с префиксом).
const (
	EventReservationCreatedVisitor = "reservation.created.visitor"
	EventReservationCreatedHost    = "reservation.created.host"
	EventReservationCancelled      = "reservation.cancelled"
)

// Event конверт уведомления
type Event struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	RecipientID int64       `json:"recipient_id"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Payload     interface{} `json:"payload"`
}

// ReservationPayload данные бронирования в уведомлении
type ReservationPayload struct {
	ReservationID int64  `json:"reservation_id"`
	OfficeID      int64  `json:"office_id"`
	OfficeTitle   string `json:"office_title"`
	VisitorID     int64  `json:"visitor_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Price         int64  `json:"price"`
	Status        string `json:"status"`
}
