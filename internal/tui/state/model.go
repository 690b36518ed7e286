package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/errors"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/cristianoliveira/choco-tui/internal/tui/render"
)

const (
	headerFooterLines     = 3
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	statusClearDuration   = 5 * time.Second
)

// Options configures a Model.
type Options struct {
	Themes *theme.Manager
	// Client lists packages for the base view. Nil leaves the list empty.
	Client choco.Client
	// Outdated lists outdated packages instead of installed ones.
	Outdated bool
	// OnSelect runs in a command goroutine when Enter is pressed on a package.
	OnSelect func(choco.Package)
	// OverlayOpacity overrides the theme's backdrop opacity when > 0.
	OverlayOpacity float64
}

// Model represents the TUI model for bubbletea: a package list with a
// single overlay slot for dialogs. Requests arriving while the slot is
// taken wait in order.
type Model struct {
	themes   *theme.Manager
	client   choco.Client
	outdated bool
	onSelect func(choco.Package)
	opacity  float64

	width    int
	height   int
	viewport viewport.Model
	packages []choco.Package
	cursor   int
	loading  bool

	active  *overlay
	pending []*overlay

	errorHandler *errors.TUIHandler
	status       string
	statusType   errors.MessageType
	statusSeq    int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager(theme.Light)
	}
	m := &Model{
		themes:   themes,
		client:   opts.Client,
		outdated: opts.Outdated,
		onSelect: opts.OnSelect,
		opacity:  opts.OverlayOpacity,
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
	}
	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg.Text
		m.statusType = msg.Type
	})
	return m
}

// Init loads the package list.
func (m *Model) Init() tea.Cmd {
	return m.loadPackages()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.active != nil {
			return m, m.handleOverlayKey(msg)
		}
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerFooterLines, 1)
		m.refresh()
		return m, nil

	case *messageRequest:
		return m, m.enqueue(newMessageOverlay(msg))
	case *loginRequest:
		return m, m.enqueue(newLoginOverlay(msg))
	case *customDialogRequest:
		return m, m.enqueue(&overlay{kind: overlayCustom, custom: msg})
	case *hideCustomDialogRequest:
		cmd := m.dropCustom(msg.dialog)
		close(msg.ack)
		return m, cmd
	case *childWindowRequest:
		return m, m.enqueue(&overlay{kind: overlayChild, window: msg.window})
	case childWindowClosedMsg:
		return m, m.dropWhere(func(o *overlay) bool { return o.window == msg.window })
	case abandonMsg:
		return m, m.dropWhere(func(o *overlay) bool { return o.request() == msg.request })

	case themeChangedMsg:
		m.refresh()
		m.errorHandler.Info("theme: " + msg.name)
		return m, m.clearStatusAfter()
	case packagesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorHandler.Error(fmt.Sprintf("failed to list packages: %v", msg.err))
			return m, m.clearStatusAfter()
		}
		m.packages = msg.packages
		if m.cursor >= len(m.packages) {
			m.cursor = max(len(m.packages)-1, 0)
		}
		m.refresh()
		return m, nil
	case StatusMsg:
		switch msg.Type {
		case errors.MessageTypeError:
			m.errorHandler.Error(msg.Text)
		case errors.MessageTypeWarning:
			m.errorHandler.Warning(msg.Text)
		case errors.MessageTypeSuccess:
			m.errorHandler.Success(msg.Text)
		default:
			m.errorHandler.Info(msg.Text)
		}
		return m, m.clearStatusAfter()
	case ReloadMsg:
		return m, m.loadPackages()
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		if m.cursor < len(m.packages)-1 {
			m.cursor++
			m.refresh()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}
	case "r":
		return m.loadPackages()
	case "t":
		themes := m.themes
		return func() tea.Msg {
			return themeChangedMsg{name: themes.Toggle().Name}
		}
	case "enter":
		if m.onSelect == nil || len(m.packages) == 0 {
			return nil
		}
		pkg, onSelect := m.packages[m.cursor], m.onSelect
		return func() tea.Msg {
			onSelect(pkg)
			return nil
		}
	}
	return nil
}

func (m *Model) loadPackages() tea.Cmd {
	if m.client == nil || m.loading {
		return nil
	}
	m.loading = true
	client, outdated := m.client, m.outdated
	return func() tea.Msg {
		var pkgs []choco.Package
		var err error
		if outdated {
			pkgs, err = client.Outdated(context.Background())
		} else {
			pkgs, err = client.ListInstalled(context.Background())
		}
		return packagesLoadedMsg{packages: pkgs, err: err}
	}
}

func (m *Model) clearStatusAfter() tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// enqueue shows o, or queues it behind the active overlay.
func (m *Model) enqueue(o *overlay) tea.Cmd {
	if m.active != nil {
		m.pending = append(m.pending, o)
		return nil
	}
	return m.activate(o)
}

func (m *Model) activate(o *overlay) tea.Cmd {
	m.active = o
	return o.activate()
}

// finish clears the active overlay and shows the next queued one.
func (m *Model) finish() tea.Cmd {
	m.active = nil
	if len(m.pending) == 0 {
		return nil
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	return m.activate(next)
}

func (m *Model) dropWhere(match func(*overlay) bool) tea.Cmd {
	for i, o := range m.pending {
		if match(o) {
			m.pending = append(m.pending[:i:i], m.pending[i+1:]...)
			return nil
		}
	}
	if m.active != nil && match(m.active) {
		return m.finish()
	}
	return nil
}

func (m *Model) dropCustom(d *dialog.CustomDialog) tea.Cmd {
	return m.dropWhere(func(o *overlay) bool {
		return o.kind == overlayCustom && o.custom.dialog == d
	})
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	done, cmd := m.active.handleKey(msg)
	if done {
		return tea.Batch(cmd, m.finish())
	}
	return cmd
}

// refresh re-renders the package list into the viewport.
func (m *Model) refresh() {
	th := m.themes.Current()
	var content strings.Builder
	for i, pkg := range m.packages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(render.Row(render.RowState{
			Package:  pkg,
			Width:    m.viewport.Width,
			Selected: i == m.cursor,
			Theme:    th,
		}))
	}
	m.viewport.SetContent(content.String())
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.viewport.Height <= 0 {
		return
	}
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// View renders the TUI.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width == 0 {
		width = defaultViewportWidth
	}
	if height == 0 {
		height = defaultViewportHeight + headerFooterLines
	}
	th := m.themes.Current()

	footer := render.Footer(render.FooterState{
		DialogOpen: m.active != nil,
		Login:      m.active != nil && m.active.kind == overlayLogin,
		Status:     m.status,
		StatusType: m.statusType,
		Theme:      th,
	})

	if m.active != nil {
		color, opacity := m.active.backdrop(th, m.opacity)
		backdrop := render.Backdrop(color, th.Background, opacity)
		box := m.active.view(th, width)
		return render.Place(width, max(height-1, 1), box, backdrop) + "\n" + footer
	}

	var s strings.Builder
	s.WriteString(render.Header(width, th))
	s.WriteString("\n")
	if m.loading && len(m.packages) == 0 {
		s.WriteString("Loading packages...")
	} else {
		s.WriteString(m.viewport.View())
	}
	s.WriteString("\n")
	s.WriteString(footer)
	return s.String()
}
