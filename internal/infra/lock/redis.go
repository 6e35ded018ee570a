package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределённая блокировка на SET NX PX.
// Ключ живёт не дольше ttl, снимается только владельцем токена.
type RedisLocker struct {
	client        *redis.Client
	prefix        string
	retryInterval time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string, retryInterval time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		prefix:        prefix,
		retryInterval: retryInterval,
	}
}

// Acquire берёт блокировку key на ttl, ожидая не дольше wait
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl, wait time.Duration) (Lock, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	err := acquireWithin(ctx, wait, l.retryInterval, func(ctx context.Context) (bool, error) {
		ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return false, fmt.Errorf("%w: SetNX %s: %v", ErrBackend, fullKey, err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return &redisLock{client: l.client, key: key, fullKey: fullKey, token: token}, nil
}

type redisLock struct {
	client  *redis.Client
	key     string
	fullKey string
	token   string
}

func (r *redisLock) Key() string {
	return r.key
}

func (r *redisLock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, r.client, []string{r.fullKey}, r.token).Int64()
	if err != nil {
		return fmt.Errorf("%w: release %s: %v", ErrBackend, r.fullKey, err)
	}
	if deleted == 0 {
		return ErrLockNotHeld
	}
	return nil
}
