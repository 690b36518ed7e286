package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/colors"
	"github.com/cristianoliveira/choco-tui/internal/dialog"
	"github.com/cristianoliveira/choco-tui/internal/logging"
	"github.com/cristianoliveira/choco-tui/internal/settings"
	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/cristianoliveira/choco-tui/internal/tui/state"
)

// RunOptions selects what the program shows.
type RunOptions struct {
	// Outdated lists outdated packages instead of installed ones.
	Outdated bool
	// BrowseOutdated opens the outdated-packages window once the program is up.
	BrowseOutdated bool
}

// Client defines dependencies needed by the tui command.
type Client interface {
	Run(ctx context.Context, opts RunOptions) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	service       *dialog.Service
	themes        *theme.Manager
	opacity       float64
	chocoFactory  ChocoClientFactory
	programRunner ProgramRunner
	settings      SettingsLoader
}

// NewDefaultClient creates a default TUI client adapter presenting through
// service. If chocoFactory is nil, a DefaultChocoClientFactory will be used.
// If programRunner is nil, a DefaultProgramRunner will be used.
// If settingsLoader is nil, a DefaultSettingsLoader will be used.
func NewDefaultClient(service *dialog.Service, themes *theme.Manager, opacity float64, chocoFactory ChocoClientFactory, programRunner ProgramRunner, settingsLoader SettingsLoader) *DefaultClient {
	if themes == nil {
		themes = theme.NewManager(theme.Light)
	}
	if chocoFactory == nil {
		chocoFactory = NewDefaultChocoClientFactory()
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	if settingsLoader == nil {
		settingsLoader = NewDefaultSettingsLoader()
	}
	return &DefaultClient{
		service:       service,
		themes:        themes,
		opacity:       opacity,
		chocoFactory:  chocoFactory,
		programRunner: programRunner,
		settings:      settingsLoader,
	}
}

// Run starts the program with a host attached to the dialog service. The
// host is detached and closed when the program exits, releasing every flow
// still waiting on it.
func (d *DefaultClient) Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.restoreTheme()

	client := d.chocoFactory.NewClient()
	var actions *Actions

	model := state.NewModel(state.Options{
		Themes:         d.themes,
		Client:         client,
		Outdated:       opts.Outdated,
		OverlayOpacity: d.opacity,
		OnSelect: func(pkg choco.Package) {
			actions.Inspect(ctx, pkg)
		},
	})

	var host *state.Host
	err := d.programRunner.Run(model, func(sender state.Sender) {
		host = state.NewHost(sender, d.themes, state.WithOverlayOpacity(d.opacity))
		actions = NewActions(d.service, client, sender)
		d.service.SetHost(host)
		if opts.BrowseOutdated {
			go func() {
				actions.report(actions.BrowseOutdated(ctx))
			}()
		}
	})

	cancel()
	d.service.SetHost(nil)
	if host != nil {
		host.Close()
	}
	d.saveTheme()
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}

// restoreTheme applies the theme saved by the previous run. Unreadable
// settings are logged and ignored.
func (d *DefaultClient) restoreTheme() {
	s, err := d.settings.Load()
	if err != nil {
		logging.Warn("ignoring tui settings", "error", err)
		return
	}
	if s.Theme == "" {
		return
	}
	if err := d.themes.Set(s.Theme); err != nil {
		logging.Warn("ignoring saved theme", "theme", s.Theme, "error", err)
	}
}

func (d *DefaultClient) saveTheme() {
	s := settings.DefaultSettings()
	s.Theme = d.themes.Current().Name
	if err := d.settings.Save(s); err != nil {
		logging.Warn("failed to save tui settings", "error", err)
	}
}
