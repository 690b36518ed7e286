package state

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	tuierrors "github.com/cristianoliveira/choco-tui/internal/errors"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func samplePackages() []choco.Package {
	return []choco.Package{
		{Name: "git", Version: "2.40.0", Available: "2.41.0"},
		{Name: "nodejs", Version: "20.1.0", Available: "20.2.0", Pinned: true},
		{Name: "7zip", Version: "23.1"},
	}
}

func loadedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(Options{Themes: theme.NewManager(theme.Light)})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(packagesLoadedMsg{packages: samplePackages()})
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{})
	assert.NotNil(t, m.themes)
	assert.Equal(t, theme.Light.Name, m.themes.Current().Name)
	assert.Nil(t, m.Init())
	assert.Nil(t, m.active)
}

func TestInitLoadsInstalledPackages(t *testing.T) {
	client := new(choco.MockClient)
	client.On("ListInstalled", mock.Anything).Return(samplePackages(), nil)
	m := NewModel(Options{Client: client})

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading packages...")
	assert.Nil(t, m.loadPackages(), "a second load while loading is a no-op")

	m.Update(cmd())
	assert.Len(t, m.packages, 3)
	assert.Contains(t, m.View(), "nodejs")
	client.AssertExpectations(t)
}

func TestInitLoadsOutdatedPackages(t *testing.T) {
	client := new(choco.MockClient)
	client.On("Outdated", mock.Anything).Return(samplePackages()[:1], nil)
	m := NewModel(Options{Client: client, Outdated: true})

	m.Update(m.Init()())
	assert.Equal(t, []choco.Package{samplePackages()[0]}, m.packages)
	client.AssertNotCalled(t, "ListInstalled", mock.Anything)
}

func TestLoadFailureShowsError(t *testing.T) {
	client := new(choco.MockClient)
	client.On("ListInstalled", mock.Anything).Return(nil, choco.ErrChocoNotFound)
	m := NewModel(Options{Client: client})

	_, cmd := m.Update(m.Init()())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.status, "failed to list packages")
	assert.Equal(t, tuierrors.MessageTypeError, m.statusType)
	assert.False(t, m.loading)
}

func TestCursorMovement(t *testing.T) {
	m := loadedModel(t)

	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(runes("j"))
	assert.Equal(t, 2, m.cursor)

	m.Update(runes("k"))
	assert.Equal(t, 1, m.cursor)

	m.Update(packagesLoadedMsg{packages: samplePackages()[:1]})
	assert.Equal(t, 0, m.cursor)
}

func TestQuitKeys(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEnterRunsOnSelect(t *testing.T) {
	var got choco.Package
	m := NewModel(Options{OnSelect: func(p choco.Package) { got = p }})
	m.Update(packagesLoadedMsg{packages: samplePackages()})
	m.Update(runes("j"))

	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, "nodejs", got.Name)
}

func TestThemeToggle(t *testing.T) {
	themes := theme.NewManager(theme.Light)
	m := NewModel(Options{Themes: themes})

	_, cmd := m.Update(runes("t"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, themeChangedMsg{name: theme.Dark.Name}, msg)
	assert.Equal(t, theme.Dark.Name, themes.Current().Name)

	m.Update(msg)
	assert.Equal(t, "theme: dark", m.status)
}

func TestStatusMessagesAndClear(t *testing.T) {
	m := loadedModel(t)

	m.Update(StatusMsg{Text: "upgraded git", Type: tuierrors.MessageTypeSuccess})
	assert.Equal(t, "upgraded git", m.status)
	first := m.statusSeq

	m.Update(StatusMsg{Text: "upgrade failed", Type: tuierrors.MessageTypeError})
	assert.Contains(t, m.View(), "Error: upgrade failed")

	m.Update(statusClearMsg{seq: first})
	assert.Equal(t, "upgrade failed", m.status, "stale clear keeps the newer status")

	m.Update(statusClearMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestOverlayViewUsesBackdropAndFooter(t *testing.T) {
	m := loadedModel(t)
	req := &messageRequest{
		title:    "Upgrade",
		message:  "Upgrade git?",
		style:    dialog.StyleAffirmativeAndNegative,
		settings: dialog.Settings{AffirmativeButtonText: "Yes", NegativeButtonText: "No"},
		reply:    make(chan dialog.Result, 1),
	}
	m.Update(req)

	view := m.View()
	assert.Contains(t, view, "Upgrade git?")
	assert.Contains(t, view, "[No]")
	assert.Contains(t, view, "ESC: close")
	assert.NotContains(t, view, "PACKAGE")

	m.Update(runes("q"))
	assert.NotNil(t, m.active, "q is not a quit key while a dialog is open")
}

func TestOverlayBackdropOpacity(t *testing.T) {
	o := &overlay{kind: overlayMessage}
	color, opacity := o.backdrop(theme.Dark, 0)
	assert.Equal(t, theme.Dark.Overlay, color)
	assert.Equal(t, theme.Dark.OverlayOpacity, opacity)

	_, opacity = o.backdrop(theme.Dark, 0.3)
	assert.Equal(t, 0.3, opacity)

	w := dialog.NewChildWindow("w", nil, nil, dialog.OverlaySnapshot{Color: "#123456", Opacity: 0.9})
	child := &overlay{kind: overlayChild, window: w}
	color, opacity = child.backdrop(theme.Dark, 0.3)
	assert.Equal(t, "#123456", string(color))
	assert.Equal(t, 0.9, opacity)
}

func TestHideUnknownCustomDialogStillAcks(t *testing.T) {
	m := loadedModel(t)
	ack := make(chan struct{})
	m.Update(&hideCustomDialogRequest{dialog: &dialog.CustomDialog{}, ack: ack})

	select {
	case <-ack:
	default:
		t.Fatal("hide was not acknowledged")
	}
}

func TestChildWindowActivationSkipsClosedWindow(t *testing.T) {
	m := loadedModel(t)
	w := dialog.NewChildWindow("gone", nil, nil, dialog.OverlaySnapshot{})
	loaded := false
	w.OnLoaded(func(*dialog.ChildWindow) { loaded = true })
	w.Close(nil)

	_, cmd := m.Update(&childWindowRequest{window: w})
	require.NotNil(t, cmd)
	cmd()
	assert.False(t, loaded)

	m.Update(childWindowClosedMsg{window: w})
	assert.Nil(t, m.active)
}

func TestChildWindowEscClosesOutsideUpdate(t *testing.T) {
	m := loadedModel(t)
	w := dialog.NewChildWindow("list", nil, nil, dialog.OverlaySnapshot{})
	m.Update(&childWindowRequest{window: w})

	_, cmd := m.Update(keyEsc)
	assert.Nil(t, m.active)
	assert.False(t, w.Closed(), "the window closes when the command runs")

	require.NotNil(t, cmd)
	runCmd(cmd)
	assert.True(t, w.Closed())
}

func TestSelectingWithoutHandlerIsNoop(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(keyEnter)
	assert.Nil(t, cmd)
}

func TestReloadKey(t *testing.T) {
	client := new(choco.MockClient)
	client.On("ListInstalled", mock.Anything).Return(nil, errors.New("boom")).Once()
	client.On("ListInstalled", mock.Anything).Return(samplePackages(), nil).Once()
	m := NewModel(Options{Client: client})

	m.Update(m.Init()())
	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Len(t, m.packages, 3)
	client.AssertNumberOfCalls(t, "ListInstalled", 2)
}

func TestLoadPackagesUsesBackgroundContext(t *testing.T) {
	client := new(choco.MockClient)
	client.On("ListInstalled", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })).Return(nil, nil)
	m := NewModel(Options{Client: client})
	m.Update(m.Init()())
	client.AssertExpectations(t)
}

// runCmd runs cmd and any commands batched inside it.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

func TestReloadMsg(t *testing.T) {
	client := new(choco.MockClient)
	client.On("ListInstalled", mock.Anything).Return(samplePackages(), nil)
	m := NewModel(Options{Client: client})

	_, cmd := m.Update(ReloadMsg{})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Len(t, m.packages, 3)
}
