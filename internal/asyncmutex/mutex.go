// Package asyncmutex provides a binary, context-aware mutual-exclusion
// primitive whose waiters are granted the permit in arrival order.
package asyncmutex

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mutex is a binary permit. The zero value is not usable; call New.
type Mutex struct {
	sem *semaphore.Weighted
}

// Guard represents a held permit. Release returns it to the next waiter.
type Guard struct {
	once sync.Once
	m    *Mutex
}

// New creates an unlocked Mutex.
func New() *Mutex {
	return &Mutex{sem: semaphore.NewWeighted(1)}
}

// Acquire blocks until the permit is free or ctx is done.
// Waiters are served in FIFO order. On error no permit is held.
//
// Callers must release the returned guard with defer:
//
//	guard, err := mu.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer guard.Release()
func (m *Mutex) Acquire(ctx context.Context) (*Guard, error) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &Guard{m: m}, nil
}

// TryAcquire takes the permit only if it is free right now and nobody is queued.
func (m *Mutex) TryAcquire() (*Guard, bool) {
	if !m.sem.TryAcquire(1) {
		return nil, false
	}
	return &Guard{m: m}, true
}

// Release returns the permit. Only the first call has an effect, so a deferred
// Release can safely coexist with an early explicit one.
func (g *Guard) Release() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		g.m.sem.Release(1)
	})
}
