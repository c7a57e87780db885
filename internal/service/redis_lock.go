package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker with a Redis `SET NX PX`, enforcing at
// most one in-flight solve per tenant by failing fast rather than queuing.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker wraps a *redis.Client as a Locker.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// Acquire attempts to set key with a TTL, failing (not blocking) if it is
// already held.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Release deletes the lock key. Called unconditionally after a solve
// whether it succeeded or failed, via a context independent of the
// request's so a caller-cancelled solve still releases its lock.
func (l *RedisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}
