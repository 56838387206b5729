// Package lock provides the distributed lock that serializes trade
// execution per listing.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Manager acquires and releases named locks. Trade execution holds the lock
// keyed on the open trade id for the duration of the transaction, so two
// concurrent execution attempts on the same listing cannot both proceed.
type Manager interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// RedisLock implements Manager with a Redis SetNX lock.
type RedisLock struct {
	client  *redis.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

// NewRedisLock creates a RedisLock. A short TTL avoids orphaned locks after
// a crash.
func NewRedisLock(client *redis.Client, ttl time.Duration, retries int, backoff time.Duration) *RedisLock {
	return &RedisLock{
		client:  client,
		ttl:     ttl,
		retries: retries,
		backoff: backoff,
	}
}

// Acquire tries to take the lock, retrying with backoff. ok is false when
// the lock is held by someone else after all retries.
func (l *RedisLock) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	for attempt := 0; attempt <= l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return "", false, err
		}
		if ok {
			return token, true, nil
		}
		if attempt < l.retries {
			time.Sleep(l.backoff)
		}
	}
	return "", false, nil
}

// Release drops the lock only if the token still matches, so an expired
// lock taken over by another holder is never released by the old one.
func (l *RedisLock) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return errors.New("key and token are required")
	}
	return releaseLua.Run(ctx, l.client, []string{key}, token).Err()
}

var releaseLua = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// NoopLock satisfies Manager without any coordination. Used in tests and
// single-instance deployments without Redis.
type NoopLock struct{}

// Acquire always succeeds.
func (NoopLock) Acquire(ctx context.Context, key string) (string, bool, error) {
	return "noop", true, nil
}

// Release always succeeds.
func (NoopLock) Release(ctx context.Context, key, token string) error { return nil }
