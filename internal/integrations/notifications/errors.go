package notifications

import "errors"

var (
	// ErrConnect не удалось подключиться к брокеру
	ErrConnect = errors.New("notifications: failed to connect")
	// ErrMarshal не удалось сериализовать событие
	ErrMarshal = errors.New("notifications: failed to marshal event")
	// ErrPublish брокер отклонил событие
	ErrPublish = errors.New("notifications: failed to publish event")
)
