package lock

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLockTimeout блокировку не удалось взять за отведённое время ожидания
	ErrLockTimeout = errors.New("lock wait timeout")
	// ErrLockNotHeld блокировка истекла и, возможно, уже взята другим владельцем
	ErrLockNotHeld = errors.New("lock is not held")
	// ErrBackend ошибка хранилища блокировок
	ErrBackend = errors.New("lock backend error")
)

// DefaultRetryInterval пауза между попытками взять занятую блокировку
const DefaultRetryInterval = 100 * time.Millisecond

// Lock взятая блокировка. Повторный Release возвращает ErrLockNotHeld.
type Lock interface {
	Key() string
	Release(ctx context.Context) error
}

// tryFunc одна попытка взять блокировку: true - взята
type tryFunc func(ctx context.Context) (bool, error)

// acquireWithin повторяет попытки, пока не истечёт wait.
// Первая попытка делается всегда, даже при wait == 0.
func acquireWithin(ctx context.Context, wait, retryInterval time.Duration, try tryFunc) error {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	deadline := time.Now().Add(wait)

	for {
		acquired, err := try(ctx)
		if err != nil {
			return err
		}
		if acquired {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrLockTimeout
		}

		pause := retryInterval
		if remaining < pause {
			pause = remaining
		}

		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
