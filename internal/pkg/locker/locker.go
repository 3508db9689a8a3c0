// Package locker provides a best-effort distributed lock used to short-circuit
// an obviously duplicate concurrent run of the same reconciliation job. It is a
// performance optimization only: the claim protocol on individual records is
// the correctness boundary, so a lost or expired lock is always safe.
package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/database"
)

// RedisLocker implements a SETNX-based lock with a TTL. The TTL guards against
// a crashed holder wedging the job forever.
type RedisLocker struct {
	redis *database.RedisClient
	owner string
}

// NewRedisLocker creates a locker with a per-process owner token
func NewRedisLocker(redis *database.RedisClient) *RedisLocker {
	return &RedisLocker{
		redis: redis,
		owner: uuid.New().String(),
	}
}

// Acquire attempts to take the named lock. It returns false without error when
// another holder has it.
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.redis.SetNX(ctx, l.key(name), l.owner, ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire job lock %s: %w", name, err)
	}
	return ok, nil
}

// Release drops the named lock if this process still holds it
func (l *RedisLocker) Release(ctx context.Context, name string) error {
	val, err := l.redis.Get(ctx, l.key(name))
	if err != nil {
		return nil // already expired or never held
	}
	if val != l.owner {
		return nil // taken over after our TTL lapsed; not ours to delete
	}
	return l.redis.Delete(ctx, l.key(name))
}

func (l *RedisLocker) key(name string) string {
	return "jobs:lock:" + name
}
