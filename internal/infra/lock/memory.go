package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker блокировки внутри одного процесса.
// Подходит для одного инстанса сервиса и для тестов; для нескольких инстансов нужен RedisLocker.
type MemoryLocker struct {
	mu            sync.Mutex
	entries       map[string]memoryEntry
	retryInterval time.Duration
	now           func() time.Time
}

func NewMemoryLocker(retryInterval time.Duration) *MemoryLocker {
	return &MemoryLocker{
		entries:       make(map[string]memoryEntry),
		retryInterval: retryInterval,
		now:           time.Now,
	}
}

// Acquire берёт блокировку key на ttl, ожидая не дольше wait.
// Просроченная запись считается свободной, так упавший владелец не держит офис вечно.
func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl, wait time.Duration) (Lock, error) {
	token := uuid.NewString()

	err := acquireWithin(ctx, wait, l.retryInterval, func(context.Context) (bool, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		now := l.now()
		if entry, ok := l.entries[key]; ok && now.Before(entry.expiresAt) {
			return false, nil
		}

		l.entries[key] = memoryEntry{token: token, expiresAt: now.Add(ttl)}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return &memoryLock{locker: l, key: key, token: token}, nil
}

func (l *MemoryLocker) release(key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || entry.token != token {
		return ErrLockNotHeld
	}

	delete(l.entries, key)
	return nil
}

type memoryLock struct {
	locker *MemoryLocker
	key    string
	token  string
}

func (m *memoryLock) Key() string {
	return m.key
}

func (m *memoryLock) Release(context.Context) error {
	return m.locker.release(m.key, m.token)
}
