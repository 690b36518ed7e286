package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/cristianoliveira/choco-tui/internal/tui/render"
)

// KeyHandler is implemented by dialog and child window content that reacts
// to keys. HandleKey runs in a command goroutine, never inside Update.
type KeyHandler interface {
	HandleKey(key string)
}

type overlayKind int

const (
	overlayMessage overlayKind = iota
	overlayLogin
	overlayCustom
	overlayChild
)

type overlay struct {
	kind overlayKind

	message  *messageRequest
	selected int

	login    *loginRequest
	username textinput.Model
	password textinput.Model
	focus    int

	custom *customDialogRequest
	window *dialog.ChildWindow
}

func newMessageOverlay(req *messageRequest) *overlay {
	return &overlay{kind: overlayMessage, message: req}
}

func newLoginOverlay(req *loginRequest) *overlay {
	username := textinput.New()
	username.Placeholder = req.settings.UsernameWatermark
	username.SetValue(req.settings.InitialUsername)

	password := textinput.New()
	password.Placeholder = req.settings.PasswordWatermark
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &overlay{kind: overlayLogin, login: req, username: username, password: password}
}

// request returns the host request behind the overlay.
func (o *overlay) request() any {
	switch o.kind {
	case overlayMessage:
		return o.message
	case overlayLogin:
		return o.login
	case overlayCustom:
		return o.custom
	default:
		return o.window
	}
}

// activate runs when the overlay reaches the slot.
func (o *overlay) activate() tea.Cmd {
	switch o.kind {
	case overlayLogin:
		return o.username.Focus()
	case overlayCustom:
		close(o.custom.ack)
	case overlayChild:
		w := o.window
		return func() tea.Msg {
			if !w.Closed() {
				w.MarkLoaded()
			}
			return nil
		}
	}
	return nil
}

// handleKey reacts to a key. done reports that the overlay is finished.
func (o *overlay) handleKey(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	switch o.kind {
	case overlayMessage:
		return o.handleMessageKey(msg.String())
	case overlayLogin:
		return o.handleLoginKey(msg)
	case overlayCustom:
		return false, forwardKey(o.custom.dialog.Content, msg.String())
	default:
		w := o.window
		if msg.String() == "esc" && w.ShowCloseButton {
			return true, func() tea.Msg {
				w.Close(nil)
				return nil
			}
		}
		return false, forwardKey(w.Content, msg.String())
	}
}

func (o *overlay) twoButtons() bool {
	return o.message.style == dialog.StyleAffirmativeAndNegative
}

func (o *overlay) handleMessageKey(key string) (bool, tea.Cmd) {
	reply := func(r dialog.Result) (bool, tea.Cmd) {
		o.message.reply <- r
		return true, nil
	}
	switch key {
	case "enter":
		if o.selected == 1 {
			return reply(dialog.ResultNegative)
		}
		return reply(dialog.ResultAffirmative)
	case "y":
		return reply(dialog.ResultAffirmative)
	case "n":
		if o.twoButtons() {
			return reply(dialog.ResultNegative)
		}
	case "esc":
		return reply(dialog.ResultCanceled)
	case "left", "right", "tab", "shift+tab", "h", "l":
		if o.twoButtons() {
			o.selected = 1 - o.selected
		}
	}
	return false, nil
}

func (o *overlay) handleLoginKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !o.login.settings.NegativeButton {
			return false, nil
		}
		o.login.reply <- nil
		return true, nil
	case "tab", "shift+tab", "up", "down":
		return false, o.switchFocus()
	case "enter":
		if o.focus == 0 {
			return false, o.switchFocus()
		}
		o.login.reply <- &dialog.Credentials{
			Username: o.username.Value(),
			Password: o.password.Value(),
		}
		return true, nil
	}

	var cmd tea.Cmd
	if o.focus == 0 {
		o.username, cmd = o.username.Update(msg)
	} else {
		o.password, cmd = o.password.Update(msg)
	}
	return false, cmd
}

func (o *overlay) switchFocus() tea.Cmd {
	o.focus = 1 - o.focus
	if o.focus == 0 {
		o.password.Blur()
		return o.username.Focus()
	}
	o.username.Blur()
	return o.password.Focus()
}

func forwardKey(content any, key string) tea.Cmd {
	h, ok := content.(KeyHandler)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		h.HandleKey(key)
		return contentChangedMsg{}
	}
}

// backdrop returns the color and opacity drawn behind the overlay. Child
// windows carry their own snapshot; everything else follows the theme.
func (o *overlay) backdrop(th theme.Theme, opacityOverride float64) (lipgloss.Color, float64) {
	if o.kind == overlayChild {
		s := o.window.Overlay()
		return s.Color, s.Opacity
	}
	opacity := th.OverlayOpacity
	if opacityOverride > 0 {
		opacity = opacityOverride
	}
	return th.Overlay, opacity
}

func (o *overlay) view(th theme.Theme, width int) string {
	state := render.DialogState{Theme: th, Width: width / 2}
	switch o.kind {
	case overlayMessage:
		state.Title = o.message.title
		state.Body = o.message.message
		state.Buttons = []render.Button{{Label: o.message.settings.AffirmativeButtonText, Selected: o.selected == 0}}
		if o.twoButtons() {
			state.Buttons = append(state.Buttons, render.Button{Label: o.message.settings.NegativeButtonText, Selected: o.selected == 1})
		}
	case overlayLogin:
		state.Title = o.login.title
		state.Body = lipgloss.JoinVertical(lipgloss.Left, o.login.message, "", o.username.View(), o.password.View())
	case overlayCustom:
		state.Title = o.custom.dialog.Title
		state.Body = render.Content(o.custom.dialog.Content)
	default:
		state.Title = o.window.Title
		state.Body = render.Content(o.window.Content)
		if o.window.ShowCloseButton {
			state.Title += "  [esc]"
		}
	}
	return render.Dialog(state)
}
