package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 50 * time.Millisecond

type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (Lock, error) {
	retries := int(l.wait / retryInterval)
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), retries),
	}

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	lk, err := l.client.Obtain(ctx, key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotObtained)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения блокировки %s: %w", key, err)
	}

	return &redisLock{lock: lk}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

func (l *redisLock) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		// TTL expired before release; nothing left to free.
		return nil
	}
	return err
}
