package state

import (
	"context"
	stderrors "errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/theme"
)

// ErrHostClosed is returned to callers still waiting when the host shuts down.
var ErrHostClosed = stderrors.New("host closed")

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Host presents dialogs inside the BubbleTea program driven by a Model.
// Every call blocks the caller, never the program loop.
type Host struct {
	sender  Sender
	themes  *theme.Manager
	opacity float64

	closeOnce sync.Once
	closed    chan struct{}
}

var _ dialog.Host = (*Host)(nil)

// HostOption configures a Host.
type HostOption func(*Host)

// WithOverlayOpacity overrides the theme's backdrop opacity when > 0.
func WithOverlayOpacity(opacity float64) HostOption {
	return func(h *Host) {
		h.opacity = opacity
	}
}

// NewHost creates a host sending its requests through sender.
func NewHost(sender Sender, themes *theme.Manager, opts ...HostOption) *Host {
	if themes == nil {
		themes = theme.NewManager(theme.Light)
	}
	h := &Host{sender: sender, themes: themes, closed: make(chan struct{})}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close releases every waiting caller with ErrHostClosed. Safe to call twice.
func (h *Host) Close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

// ShowMessage shows a message dialog and waits for the user's choice.
func (h *Host) ShowMessage(ctx context.Context, title, message string, style dialog.Style, settings dialog.Settings) (dialog.Result, error) {
	req := &messageRequest{
		title:    title,
		message:  message,
		style:    style,
		settings: settings,
		reply:    make(chan dialog.Result, 1),
	}
	if err := h.send(ctx, req); err != nil {
		return dialog.ResultCanceled, err
	}
	select {
	case r := <-req.reply:
		return r, nil
	case <-ctx.Done():
		h.sender.Send(abandonMsg{request: req})
		return dialog.ResultCanceled, ctx.Err()
	case <-h.closed:
		return dialog.ResultCanceled, ErrHostClosed
	}
}

// ShowLogin shows the login form. A nil result means the user cancelled.
func (h *Host) ShowLogin(ctx context.Context, title, message string, settings *dialog.LoginSettings) (*dialog.Credentials, error) {
	if settings == nil {
		settings = &dialog.LoginSettings{}
	}
	req := &loginRequest{
		title:    title,
		message:  message,
		settings: *settings,
		reply:    make(chan *dialog.Credentials, 1),
	}
	if err := h.send(ctx, req); err != nil {
		return nil, err
	}
	select {
	case c := <-req.reply:
		return c, nil
	case <-ctx.Done():
		h.sender.Send(abandonMsg{request: req})
		return nil, ctx.Err()
	case <-h.closed:
		return nil, ErrHostClosed
	}
}

// ShowCustomDialog returns once d is on screen.
func (h *Host) ShowCustomDialog(ctx context.Context, d *dialog.CustomDialog, settings *dialog.Settings) error {
	req := &customDialogRequest{dialog: d, ack: make(chan struct{})}
	if settings != nil {
		req.settings = *settings
	}
	if err := h.send(ctx, req); err != nil {
		return err
	}
	return h.wait(ctx, req.ack, func() { h.sender.Send(abandonMsg{request: req}) })
}

// HideCustomDialog returns once d is off screen.
func (h *Host) HideCustomDialog(ctx context.Context, d *dialog.CustomDialog, _ *dialog.Settings) error {
	req := &hideCustomDialogRequest{dialog: d, ack: make(chan struct{})}
	if err := h.send(ctx, req); err != nil {
		return err
	}
	return h.wait(ctx, req.ack, nil)
}

// ShowChildWindow shows w and blocks until it is closed. Cancelling ctx
// closes the window with no result.
func (h *Host) ShowChildWindow(ctx context.Context, w *dialog.ChildWindow) (any, error) {
	if err := h.send(ctx, &childWindowRequest{window: w}); err != nil {
		w.Close(nil)
		return nil, err
	}
	select {
	case <-w.Done():
		h.sender.Send(childWindowClosedMsg{window: w})
		return w.Result(), nil
	case <-ctx.Done():
		w.Close(nil)
		h.sender.Send(childWindowClosedMsg{window: w})
		return nil, ctx.Err()
	case <-h.closed:
		w.Close(nil)
		return nil, ErrHostClosed
	}
}

// OverlayColor returns the current theme's backdrop color.
func (h *Host) OverlayColor() lipgloss.Color {
	return h.themes.Current().Overlay
}

// OverlayOpacity returns the configured backdrop opacity.
func (h *Host) OverlayOpacity() float64 {
	if h.opacity > 0 {
		return h.opacity
	}
	return h.themes.Current().OverlayOpacity
}

func (h *Host) send(ctx context.Context, msg tea.Msg) error {
	select {
	case <-h.closed:
		return ErrHostClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	h.sender.Send(msg)
	return nil
}

func (h *Host) wait(ctx context.Context, ack <-chan struct{}, abandon func()) error {
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		if abandon != nil {
			abandon()
		}
		return ctx.Err()
	case <-h.closed:
		return ErrHostClosed
	}
}
