// Package state provides the BubbleTea model of the terminal UI and the
// dialog host that drives it.
package state

import (
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/errors"
)

// Host requests. Each is sent as a pointer so the model can match the
// request it is asked to abandon.

type messageRequest struct {
	title    string
	message  string
	style    dialog.Style
	settings dialog.Settings
	reply    chan dialog.Result
}

type loginRequest struct {
	title    string
	message  string
	settings dialog.LoginSettings
	reply    chan *dialog.Credentials
}

type customDialogRequest struct {
	dialog   *dialog.CustomDialog
	settings dialog.Settings
	ack      chan struct{}
}

type hideCustomDialogRequest struct {
	dialog *dialog.CustomDialog
	ack    chan struct{}
}

type childWindowRequest struct {
	window *dialog.ChildWindow
}

// childWindowClosedMsg is sent by the host once a window's Done channel closed.
type childWindowClosedMsg struct {
	window *dialog.ChildWindow
}

// abandonMsg withdraws a request whose caller stopped waiting.
type abandonMsg struct {
	request any
}

// contentChangedMsg triggers a redraw after content handled a key.
type contentChangedMsg struct{}

type themeChangedMsg struct {
	name string
}

type packagesLoadedMsg struct {
	packages []choco.Package
	err      error
}

type statusClearMsg struct {
	seq int
}

// StatusMsg shows Text on the status line for a few seconds.
type StatusMsg struct {
	Text string
	Type errors.MessageType
}

// ReloadMsg asks the model to list packages again.
type ReloadMsg struct{}
