package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/prompt"
	"github.com/cristianoliveira/choco-tui/internal/settings"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/cristianoliveira/choco-tui/internal/tui/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

// loop is a minimal stand-in for tea.Program: messages are applied on one
// goroutine and commands run on their own.
type loop struct {
	model tea.Model
	msgs  chan tea.Msg
	done  chan struct{}
}

type viewMsg chan string

func (l *loop) Send(msg tea.Msg) {
	select {
	case l.msgs <- msg:
	case <-l.done:
	}
}

func (l *loop) run() {
	for {
		select {
		case msg := <-l.msgs:
			if reply, ok := msg.(viewMsg); ok {
				reply <- l.model.View()
				continue
			}
			var cmd tea.Cmd
			l.model, cmd = l.model.Update(msg)
			l.exec(cmd)
		case <-l.done:
			return
		}
	}
}

func (l *loop) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		switch msg := cmd().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			for _, c := range msg {
				l.exec(c)
			}
		default:
			l.Send(msg)
		}
	}()
}

func (l *loop) view() string {
	reply := make(viewMsg, 1)
	l.Send(reply)
	select {
	case v := <-reply:
		return v
	case <-l.done:
		return ""
	}
}

func (l *loop) waitView(t *testing.T, text string) {
	t.Helper()
	require.Eventually(t, func() bool { return strings.Contains(l.view(), text) }, waitFor, 5*time.Millisecond)
}

func (l *loop) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			l.Send(tea.KeyMsg{Type: tea.KeyEnter})
		case "tab":
			l.Send(tea.KeyMsg{Type: tea.KeyTab})
		case "esc":
			l.Send(tea.KeyMsg{Type: tea.KeyEsc})
		default:
			l.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// scriptedRunner runs the model in a loop and drives it with script.
type scriptedRunner struct {
	t      *testing.T
	script func(l *loop)
	err    error
}

func (r *scriptedRunner) Run(model tea.Model, ready func(state.Sender)) error {
	l := &loop{model: model, msgs: make(chan tea.Msg), done: make(chan struct{})}
	defer close(l.done)
	go l.run()
	ready(l)
	l.exec(model.Init())
	l.Send(tea.WindowSizeMsg{Width: 200, Height: 40})
	if r.script != nil {
		r.script(l)
	}
	return r.err
}

type mockFactory struct {
	client choco.Client
}

func (f mockFactory) NewClient() choco.Client { return f.client }

type memSettings struct {
	saved   *settings.Settings
	loadErr error
}

func (m *memSettings) Load() (*settings.Settings, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return settings.DefaultSettings(), nil
	}
	return m.saved, nil
}

func (m *memSettings) Save(s *settings.Settings) error {
	m.saved = s
	return nil
}

func newService() *dialog.Service {
	return dialog.New(dialog.WithPrompter(prompt.Assume{}))
}

func TestNewDefaultClientDefaults(t *testing.T) {
	client := NewDefaultClient(newService(), nil, 0, nil, nil, nil)
	assert.NotNil(t, client.themes)
	assert.IsType(t, &DefaultChocoClientFactory{}, client.chocoFactory)
	assert.IsType(t, &DefaultProgramRunner{}, client.programRunner)
	assert.IsType(t, &DefaultSettingsLoader{}, client.settings)
}

func TestRunAttachesAndDetachesHost(t *testing.T) {
	service := newService()
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return([]choco.Package{{Name: "git", Version: "2.40.0"}}, nil)

	var attached dialog.Host
	runner := &scriptedRunner{t: t, script: func(l *loop) {
		attached = service.Host()
		l.waitView(t, "git")
	}}

	client := NewDefaultClient(service, theme.NewManager(theme.Dark), 0.5, mockFactory{chocoClient}, runner, &memSettings{})
	require.NoError(t, client.Run(context.Background(), RunOptions{}))

	require.NotNil(t, attached)
	assert.Equal(t, 0.5, attached.OverlayOpacity())
	assert.Nil(t, service.Host())
}

func TestRunRestoresAndSavesTheme(t *testing.T) {
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return(nil, nil)
	store := &memSettings{saved: &settings.Settings{Theme: theme.Dark.Name}}
	themes := theme.NewManager(theme.Light)

	var during string
	runner := &scriptedRunner{t: t, script: func(l *loop) {
		during = themes.Current().Name
		l.press("t")
		l.waitView(t, "theme: light")
	}}

	client := NewDefaultClient(newService(), themes, 0, mockFactory{chocoClient}, runner, store)
	require.NoError(t, client.Run(context.Background(), RunOptions{}))

	assert.Equal(t, theme.Dark.Name, during)
	assert.Equal(t, theme.Light.Name, store.saved.Theme)
}

func TestRunIgnoresUnreadableSettings(t *testing.T) {
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return(nil, nil)
	store := &memSettings{loadErr: errors.New("corrupted")}
	themes := theme.NewManager(theme.Dark)

	client := NewDefaultClient(newService(), themes, 0, mockFactory{chocoClient}, &scriptedRunner{t: t}, store)
	require.NoError(t, client.Run(context.Background(), RunOptions{}))
	assert.Equal(t, theme.Dark.Name, store.saved.Theme)
}

func TestRunReturnsRunnerError(t *testing.T) {
	service := newService()
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return(nil, nil).Maybe()

	runner := &scriptedRunner{t: t, err: errors.New("no tty")}
	client := NewDefaultClient(service, nil, 0, mockFactory{chocoClient}, runner, &memSettings{})

	err := client.Run(context.Background(), RunOptions{})
	assert.EqualError(t, err, "no tty")
	assert.Nil(t, service.Host())
}

func TestBrowseOutdatedUpgradesPickedPackage(t *testing.T) {
	service := newService()
	pkgs := []choco.Package{
		{Name: "git", Version: "2.40.0", Available: "2.41.0"},
		{Name: "nodejs", Version: "20.1.0", Available: "20.2.0"},
	}
	chocoClient := new(choco.MockClient)
	chocoClient.On("Outdated", mock.Anything).Return(pkgs, nil)
	chocoClient.On("Stream", mock.Anything, []string{"upgrade", "nodejs", "-y"}).Return([]string{"Upgrading nodejs", "Chocolatey upgraded 1/1 packages."}, nil)

	runner := &scriptedRunner{t: t, script: func(l *loop) {
		l.waitView(t, "Outdated packages")
		l.press("j", "enter")
		l.waitView(t, "Upgrade nodejs from 20.1.0 to 20.2.0?")
		l.press("y")
		l.waitView(t, "upgraded nodejs")
	}}

	client := NewDefaultClient(service, nil, 0, mockFactory{chocoClient}, runner, &memSettings{})
	require.NoError(t, client.Run(context.Background(), RunOptions{Outdated: true, BrowseOutdated: true}))
	chocoClient.AssertExpectations(t)
}

func TestUpgradeRetriesWithCredentials(t *testing.T) {
	service := newService()
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return([]choco.Package{{Name: "internal-tool", Version: "1.0.0"}}, nil)
	chocoClient.On("LatestVersion", mock.Anything, "internal-tool").Return("", choco.ErrPackageNotFound)
	chocoClient.On("Stream", mock.Anything, []string{"upgrade", "internal-tool", "-y"}).
		Return([]string{"The remote server returned an error: (401) Unauthorized."}, choco.ErrCommandFailed)
	chocoClient.On("Stream", mock.Anything, []string{"upgrade", "internal-tool", "-y", "--user", "bob", "--password", "pw"}).
		Return([]string{"Chocolatey upgraded 1/1 packages."}, nil)

	runner := &scriptedRunner{t: t, script: func(l *loop) {
		l.waitView(t, "internal-tool")
		l.press("enter")
		l.waitView(t, "u: upgrade")
		l.press("u")
		l.waitView(t, "Upgrade internal-tool from 1.0.0 to the latest version?")
		l.press("y")
		l.waitView(t, "Authentication required")
		l.press("bob", "tab", "pw", "enter")
		l.waitView(t, "upgraded internal-tool")
	}}

	client := NewDefaultClient(service, nil, 0, mockFactory{chocoClient}, runner, &memSettings{})
	require.NoError(t, client.Run(context.Background(), RunOptions{}))
	chocoClient.AssertExpectations(t)
}

func TestInspectCloseSkipsUpgrade(t *testing.T) {
	service := newService()
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return([]choco.Package{{Name: "git", Version: "2.40.0"}}, nil)
	chocoClient.On("LatestVersion", mock.Anything, "git").Return("2.41.0", nil)

	runner := &scriptedRunner{t: t, script: func(l *loop) {
		l.waitView(t, "git")
		l.press("enter")
		l.waitView(t, "Available: 2.41.0")
		l.press("q")
		l.waitView(t, "PACKAGE")
	}}

	client := NewDefaultClient(service, nil, 0, mockFactory{chocoClient}, runner, &memSettings{})
	require.NoError(t, client.Run(context.Background(), RunOptions{}))
	chocoClient.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything)
}

func TestUpgradeFailureShowsMessage(t *testing.T) {
	service := newService()
	chocoClient := new(choco.MockClient)
	chocoClient.On("ListInstalled", mock.Anything).Return([]choco.Package{{Name: "git", Version: "2.40.0", Available: "2.41.0"}}, nil)
	chocoClient.On("Stream", mock.Anything, []string{"upgrade", "git", "-y"}).Return([]string{"disk full"}, choco.ErrCommandFailed)

	runner := &scriptedRunner{t: t, script: func(l *loop) {
		l.waitView(t, "git")
		l.press("enter")
		l.waitView(t, "u: upgrade")
		l.press("u")
		l.waitView(t, "Upgrade git from 2.40.0 to 2.41.0?")
		l.press("y")
		l.waitView(t, "Upgrade failed")
		l.press("enter")
		l.waitView(t, "PACKAGE")
	}}

	client := NewDefaultClient(service, nil, 0, mockFactory{chocoClient}, runner, &memSettings{})
	require.NoError(t, client.Run(context.Background(), RunOptions{}))
}

func TestProgressViewDetectsRejectedFeed(t *testing.T) {
	v := &progressView{}
	assert.Equal(t, "Starting...", v.View())
	assert.False(t, v.needsCredentials())

	for i := 0; i < progressLines+2; i++ {
		v.append("line")
	}
	v.append("Response status code does not indicate success: 401 (Unauthorized).")
	assert.True(t, v.needsCredentials())
	assert.Len(t, strings.Split(v.View(), "\n"), progressLines)
}

func TestOutdatedViewKeys(t *testing.T) {
	signal := dialog.NewCloseSignal[string]()
	v := newOutdatedView([]choco.Package{{Name: "git"}, {Name: "nodejs"}}, signal)

	v.HandleKey("k")
	v.HandleKey("j")
	v.HandleKey("j")
	assert.Contains(t, v.View(), "> nodejs")

	v.HandleKey("enter")
	got, err := signal.WaitForClosing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nodejs", got)

	empty := newOutdatedView(nil, dialog.NewCloseSignal[string]())
	assert.Contains(t, empty.View(), "up to date")
}
