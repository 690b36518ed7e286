// Package notify provides the callback registry shared by the theme manager,
// the dialog service and the choco launcher.
package notify

import "sync"

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Registry is an ordered set of callbacks. The zero value is ready to use.
type Registry[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[T]
}

// Add registers fn. The returned function removes it; calling it more than
// once is a no-op.
func (r *Registry[T]) Add(fn func(T)) (remove func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, e := range r.entries {
				if e.id == id {
					r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// Snapshot returns the callbacks in registration order.
func (r *Registry[T]) Snapshot() []func(T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := make([]func(T), len(r.entries))
	for i, e := range r.entries {
		fns[i] = e.fn
	}
	return fns
}

// Notify calls every callback with v, in registration order, outside the
// registry lock. Callbacks may add or remove registrations.
func (r *Registry[T]) Notify(v T) {
	for _, fn := range r.Snapshot() {
		fn(v)
	}
}

// Len returns the number of registered callbacks.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
