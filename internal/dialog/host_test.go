package dialog

import (
	"context"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/theme"
)

// fakeHost records calls and lets each test script the host behaviour.
type fakeHost struct {
	mu    sync.Mutex
	calls []string

	themes *theme.Manager

	messageFn func(ctx context.Context, title, message string, style Style, settings Settings) (Result, error)
	loginFn   func(ctx context.Context, title, message string, settings *LoginSettings) (*Credentials, error)
	childFn   func(ctx context.Context, w *ChildWindow) (any, error)
	showErr   error
	hideErr   error

	dialogs []*CustomDialog
	windows []*ChildWindow
}

func (h *fakeHost) record(call string) {
	h.mu.Lock()
	h.calls = append(h.calls, call)
	h.mu.Unlock()
}

func (h *fakeHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

func (h *fakeHost) ShowMessage(ctx context.Context, title, message string, style Style, settings Settings) (Result, error) {
	h.record("message:" + title)
	if h.messageFn != nil {
		return h.messageFn(ctx, title, message, style, settings)
	}
	return ResultAffirmative, nil
}

func (h *fakeHost) ShowLogin(ctx context.Context, title, message string, settings *LoginSettings) (*Credentials, error) {
	h.record("login:" + title)
	if h.loginFn != nil {
		return h.loginFn(ctx, title, message, settings)
	}
	return &Credentials{Username: "user", Password: "secret"}, nil
}

func (h *fakeHost) ShowCustomDialog(ctx context.Context, d *CustomDialog, settings *Settings) error {
	h.record("show-dialog:" + d.Title)
	h.mu.Lock()
	h.dialogs = append(h.dialogs, d)
	h.mu.Unlock()
	return h.showErr
}

func (h *fakeHost) HideCustomDialog(ctx context.Context, d *CustomDialog, settings *Settings) error {
	h.record("hide-dialog:" + d.Title)
	return h.hideErr
}

func (h *fakeHost) ShowChildWindow(ctx context.Context, w *ChildWindow) (any, error) {
	h.record("child:" + w.Title)
	h.mu.Lock()
	h.windows = append(h.windows, w)
	h.mu.Unlock()
	if h.childFn != nil {
		return h.childFn(ctx, w)
	}
	w.MarkLoaded()
	select {
	case <-w.Done():
		return w.Result(), nil
	case <-ctx.Done():
		w.Close(nil)
		return nil, ctx.Err()
	}
}

func (h *fakeHost) OverlayColor() lipgloss.Color {
	if h.themes != nil {
		return h.themes.Current().Overlay
	}
	return lipgloss.Color("#000000")
}

func (h *fakeHost) OverlayOpacity() float64 {
	if h.themes != nil {
		return h.themes.Current().OverlayOpacity
	}
	return 0.5
}

// countingContext counts WaitForClosing calls.
type countingContext[R any] struct {
	mu     sync.Mutex
	waits  int
	result R
	err    error
}

func (c *countingContext[R]) WaitForClosing(ctx context.Context) (R, error) {
	c.mu.Lock()
	c.waits++
	c.mu.Unlock()
	return c.result, c.err
}

func (c *countingContext[R]) Waits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waits
}

// countingThemes wraps a theme manager and counts registrations.
type countingThemes struct {
	*theme.Manager
	mu         sync.Mutex
	registered int
	removed    int
}

func (c *countingThemes) OnChanged(fn func(theme.Change)) func() {
	c.mu.Lock()
	c.registered++
	c.mu.Unlock()
	remove := c.Manager.OnChanged(fn)
	return func() {
		c.mu.Lock()
		c.removed++
		c.mu.Unlock()
		remove()
	}
}

func (c *countingThemes) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registered, c.removed
}
