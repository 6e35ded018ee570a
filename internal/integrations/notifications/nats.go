package notifications

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher публикует события в NATS
type NATSPublisher struct {
	conn *nats.Conn
}

// Connect подключается к NATS. Соединение само переподключается при обрывах.
func Connect(url, name string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, url, err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(subject string, data []byte) error {
	return p.conn.Publish(subject, data)
}

// Close отправляет буферизованные события и закрывает соединение
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// LogPublisher пишет события в лог вместо брокера
type LogPublisher struct {
	log Logger
}

func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(subject string, data []byte) error {
	p.log.Info("Notification %s: %s", subject, string(data))
	return nil
}
