// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Lock is a held distributed lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker acquires named, expiring locks. TryLock returns ok=false without
// blocking when the lock is held elsewhere.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (lock Lock, ok bool, err error)
}
