package dialog

import (
	"context"
	"sync"

	"github.com/cristianoliveira/choco-tui/internal/notify"
)

// CloseSignal is a ready-made closable context. Content models hold one and
// call Close when the user is done.
type CloseSignal[R any] struct {
	mu       sync.Mutex
	closed   bool
	result   R
	done     chan struct{}
	requests notify.Registry[R]
}

// NewCloseSignal creates an open signal.
func NewCloseSignal[R any]() *CloseSignal[R] {
	return &CloseSignal[R]{done: make(chan struct{})}
}

// Close forwards r to every close-request listener and then resolves the
// signal. Later calls are ignored.
func (c *CloseSignal[R]) Close(r R) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.result = r
	c.mu.Unlock()

	c.requests.Notify(r)
	close(c.done)
}

// WaitForClosing blocks until Close is called or ctx is done.
func (c *CloseSignal[R]) WaitForClosing(ctx context.Context) (R, error) {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.result, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// OnCloseRequested registers fn to receive the result passed to Close.
// If the signal is already closed fn runs immediately.
func (c *CloseSignal[R]) OnCloseRequested(fn func(R)) (remove func()) {
	c.mu.Lock()
	if c.closed {
		r := c.result
		c.mu.Unlock()
		fn(r)
		return func() {}
	}
	remove = c.requests.Add(fn)
	c.mu.Unlock()
	return remove
}

// Listeners returns the number of close-request registrations.
func (c *CloseSignal[R]) Listeners() int {
	return c.requests.Len()
}

type waitOnly[R any] struct {
	ctx ClosableContext[R]
}

func (w waitOnly[R]) WaitForClosing(ctx context.Context) (R, error) {
	return w.ctx.WaitForClosing(ctx)
}

// WaitOnly wraps c so that it only exposes WaitForClosing.
func WaitOnly[R any](c ClosableContext[R]) ClosableContext[R] {
	return waitOnly[R]{ctx: c}
}
