package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/pkg/logger"
)

type published struct {
	subject string
	event   Event
	payload ReservationPayload
}

type fakePublisher struct {
	messages []published
	failOn   string
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if subject == f.failOn {
		return errors.New("broker is down")
	}

	var raw struct {
		Event
		Payload ReservationPayload `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.messages = append(f.messages, published{subject: subject, event: raw.Event, payload: raw.Payload})
	return nil
}

func newFixture() (*domain.Reservation, *domain.Office) {
	reservation := &domain.Reservation{
		ID:        15,
		UserID:    3,
		OfficeID:  10,
		StartDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusActive,
		Price:     3000,
	}
	office := &domain.Office{ID: 10, UserID: 2, Title: "Loft"}
	return reservation, office
}

func TestDispatcher_NotifyReservationCreated(t *testing.T) {
	publisher := &fakePublisher{}
	dispatcher := NewDispatcher(publisher, "office-booking.", logger.NewNop())
	reservation, office := newFixture()

	err := dispatcher.NotifyReservationCreated(context.Background(), reservation, office)
	require.NoError(t, err)

	require.Len(t, publisher.messages, 2)

	visitor := publisher.messages[0]
	assert.Equal(t, "office-booking.reservation.created.visitor", visitor.subject)
	assert.Equal(t, int64(3), visitor.event.RecipientID)
	assert.NotEmpty(t, visitor.event.ID)
	assert.Equal(t, "2026-11-01", visitor.payload.StartDate)
	assert.Equal(t, "Loft", visitor.payload.OfficeTitle)
	assert.Equal(t, int64(3000), visitor.payload.Price)

	host := publisher.messages[1]
	assert.Equal(t, "office-booking.reservation.created.host", host.subject)
	assert.Equal(t, int64(2), host.event.RecipientID)
	assert.NotEqual(t, visitor.event.ID, host.event.ID)
}

func TestDispatcher_NotifyReservationCreated_OneRecipientFails(t *testing.T) {
	publisher := &fakePublisher{failOn: "reservation.created.visitor"}
	dispatcher := NewDispatcher(publisher, "", logger.NewNop())
	reservation, office := newFixture()

	err := dispatcher.NotifyReservationCreated(context.Background(), reservation, office)

	assert.ErrorIs(t, err, ErrPublish)
	// хост всё равно получил уведомление
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "reservation.created.host", publisher.messages[0].subject)
}

func TestDispatcher_Send_CancelledContext(t *testing.T) {
	publisher := &fakePublisher{}
	dispatcher := NewDispatcher(publisher, "", logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dispatcher.Send(ctx, 1, EventReservationCancelled, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, publisher.messages)
}
