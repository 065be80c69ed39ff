// Package lock provides per-user locking so that mutating progression calls
// for the same player are serialized.
package lock

import (
	"context"
	"sync"
)

// UserLock hands out one mutex per user id. Locks for different users never
// block each other.
type UserLock struct {
	locks sync.Map // map[string]*sync.Mutex
}

// NewUserLock creates a new UserLock instance.
func NewUserLock() *UserLock {
	return &UserLock{}
}

func (ul *UserLock) getLock(userID string) *sync.Mutex {
	if v, ok := ul.locks.Load(userID); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := ul.locks.LoadOrStore(userID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Unlock releases the lock for a user.
func (ul *UserLock) Unlock(userID string) {
	if v, ok := ul.locks.Load(userID); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// LockContext blocks until the user's lock is held or ctx is done.
// On cancellation the pending acquisition is released in the background.
func (ul *UserLock) LockContext(ctx context.Context, userID string) error {
	mu := ul.getLock(userID)
	if mu.TryLock() {
		return nil
	}

	done := make(chan struct{})
	go func() {
		mu.Lock()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		go func() {
			<-done
			mu.Unlock()
		}()
		if ctx.Err() == context.DeadlineExceeded {
			return ErrLockTimeout
		}
		return ctx.Err()
	}
}

// WithLockContext runs fn while holding the user's lock.
func (ul *UserLock) WithLockContext(ctx context.Context, userID string, fn func() error) error {
	if err := ul.LockContext(ctx, userID); err != nil {
		return err
	}
	defer ul.Unlock(userID)
	return fn()
}
