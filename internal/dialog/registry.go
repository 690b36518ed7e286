package dialog

import (
	"sync"
	"sync/atomic"

	"github.com/cristianoliveira/choco-tui/internal/notify"
)

// WindowEvent is delivered to opened/closed listeners.
type WindowEvent struct {
	Window *ChildWindow
	// Result is the close result; nil for opened events and result-less closes.
	Result any
}

// Events fans out child-window lifecycle notifications.
// Listeners are optional; notifying with none registered is not an error.
type Events struct {
	opened notify.Registry[WindowEvent]
	closed notify.Registry[WindowEvent]
}

// OnChildWindowOpened registers fn for windows becoming visible.
func (e *Events) OnChildWindowOpened(fn func(WindowEvent)) (remove func()) {
	return e.opened.Add(fn)
}

// OnChildWindowClosed registers fn for windows that finished closing.
func (e *Events) OnChildWindowClosed(fn func(WindowEvent)) (remove func()) {
	return e.closed.Add(fn)
}

func (e *Events) notifyOpened(ev WindowEvent) {
	e.opened.Notify(ev)
}

func (e *Events) notifyClosed(ev WindowEvent) {
	e.closed.Notify(ev)
}

// flowScope collects the subscriptions made during one presentation flow and
// removes all of them exactly once when the flow ends. Subscriptions tracked
// after the scope closed are removed immediately.
type flowScope struct {
	mu       sync.Mutex
	removers []func()
	closed   bool
	live     *atomic.Int64
}

func newFlowScope(live *atomic.Int64) *flowScope {
	return &flowScope{live: live}
}

func (s *flowScope) track(remove func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		remove()
		return
	}
	s.removers = append(s.removers, remove)
	s.live.Add(1)
	s.mu.Unlock()
}

// close removes tracked subscriptions in reverse order of registration.
func (s *flowScope) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	removers := s.removers
	s.removers = nil
	s.mu.Unlock()

	for i := len(removers) - 1; i >= 0; i-- {
		removers[i]()
		s.live.Add(-1)
	}
}
