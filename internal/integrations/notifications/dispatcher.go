package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/OfficeBookingService/internal/domain"
)

// Dispatcher отправляет уведомления о бронированиях
type Dispatcher struct {
	publisher     Publisher
	subjectPrefix string
	log           Logger
	now           func() time.Time
}

func NewDispatcher(publisher Publisher, subjectPrefix string, log Logger) *Dispatcher {
	return &Dispatcher{
		publisher:     publisher,
		subjectPrefix: subjectPrefix,
		log:           log,
		now:           time.Now,
	}
}

// Send публикует одно событие для получателя
func (d *Dispatcher) Send(ctx context.Context, recipientID int64, eventType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		RecipientID: recipientID,
		OccurredAt:  d.now().UTC(),
		Payload:     payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, eventType, err)
	}

	if err := d.publisher.Publish(d.subjectPrefix+eventType, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	return nil
}

// NotifyReservationCreated уведомляет посетителя и владельца офиса.
// Ошибка одного получателя не мешает отправке другому.
func (d *Dispatcher) NotifyReservationCreated(ctx context.Context, reservation *domain.Reservation, office *domain.Office) error {
	payload := newReservationPayload(reservation, office)

	visitorErr := d.Send(ctx, reservation.UserID, EventReservationCreatedVisitor, payload)
	hostErr := d.Send(ctx, office.UserID, EventReservationCreatedHost, payload)

	if err := errors.Join(visitorErr, hostErr); err != nil {
		return err
	}

	d.log.Info("NotifyReservationCreated: reservation_id=%d sent to visitor_id=%d and host_id=%d",
		reservation.ID, reservation.UserID, office.UserID)
	return nil
}

// NotifyReservationCancelled уведомляет владельца офиса об отмене
func (d *Dispatcher) NotifyReservationCancelled(ctx context.Context, reservation *domain.Reservation, hostID int64) error {
	return d.Send(ctx, hostID, EventReservationCancelled, newReservationPayload(reservation, nil))
}

func newReservationPayload(reservation *domain.Reservation, office *domain.Office) ReservationPayload {
	payload := ReservationPayload{
		ReservationID: reservation.ID,
		OfficeID:      reservation.OfficeID,
		VisitorID:     reservation.UserID,
		StartDate:     reservation.StartDate.Format(domain.DateFormat),
		EndDate:       reservation.EndDate.Format(domain.DateFormat),
		Price:         reservation.Price,
		Status:        string(reservation.Status),
	}
	if office != nil {
		payload.OfficeTitle = office.Title
	}
	return payload
}
