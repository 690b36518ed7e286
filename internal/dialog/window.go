package dialog

import (
	"sync"
	"sync/atomic"

	"github.com/cristianoliveira/choco-tui/internal/notify"
)

// ChildWindow is a movable modal window drawn by the host over a backdrop.
//
// The host calls MarkLoaded once the window is visible and waits on Done.
// Close may be called from any goroutine; only the first call counts.
type ChildWindow struct {
	Title           string
	Content         any
	DataContext     any
	IsModal         bool
	AllowMove       bool
	ShowCloseButton bool
	BorderThickness int

	overlay atomic.Pointer[OverlaySnapshot]

	loaded          notify.Registry[*ChildWindow]
	closingFinished notify.Registry[WindowEvent]

	loadOnce  sync.Once
	closeOnce sync.Once
	done      chan struct{}
	result    any
}

// NewChildWindow creates a window descriptor with the given backdrop.
func NewChildWindow(title string, content, dataContext any, overlay OverlaySnapshot) *ChildWindow {
	w := &ChildWindow{
		Title:           title,
		Content:         content,
		DataContext:     dataContext,
		IsModal:         true,
		AllowMove:       true,
		ShowCloseButton: true,
		BorderThickness: 1,
		done:            make(chan struct{}),
	}
	w.SetOverlay(overlay)
	return w
}

// Overlay returns the current backdrop snapshot.
func (w *ChildWindow) Overlay() OverlaySnapshot {
	if p := w.overlay.Load(); p != nil {
		return *p
	}
	return OverlaySnapshot{}
}

// SetOverlay replaces the backdrop with a new snapshot.
func (w *ChildWindow) SetOverlay(s OverlaySnapshot) {
	w.overlay.Store(&s)
}

// OnLoaded registers fn to run when the host reports the window visible.
func (w *ChildWindow) OnLoaded(fn func(*ChildWindow)) (remove func()) {
	return w.loaded.Add(fn)
}

// OnClosingFinished registers fn to run after the window closed.
func (w *ChildWindow) OnClosingFinished(fn func(WindowEvent)) (remove func()) {
	return w.closingFinished.Add(fn)
}

// MarkLoaded is called by the host once the window is on screen.
func (w *ChildWindow) MarkLoaded() {
	w.loadOnce.Do(func() {
		w.loaded.Notify(w)
	})
}

// Close closes the window with result (nil for none). Closing-finished
// handlers run before Done is signalled.
func (w *ChildWindow) Close(result any) {
	w.closeOnce.Do(func() {
		w.result = result
		w.closingFinished.Notify(WindowEvent{Window: w, Result: result})
		close(w.done)
	})
}

// Done is closed once the window finished closing.
func (w *ChildWindow) Done() <-chan struct{} {
	return w.done
}

// Result returns the close result. It is only meaningful after Done.
func (w *ChildWindow) Result() any {
	select {
	case <-w.done:
		return w.result
	default:
		return nil
	}
}

// Closed reports whether the window has finished closing.
func (w *ChildWindow) Closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// loadedHandlers returns the number of registered loaded handlers.
func (w *ChildWindow) loadedHandlers() int {
	return w.loaded.Len()
}
