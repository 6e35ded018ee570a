package notifications

// Publisher транспорт событий. В проде - NATS, без брокера - LogPublisher.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
