// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/choco-tui/internal/choco"
	"github.com/cristianoliveira/choco-tui/internal/settings"
	"github.com/cristianoliveira/choco-tui/internal/tui/state"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the program with the given model. ready receives the
	// program's sender before the first message is processed.
	Run(model tea.Model, ready func(state.Sender)) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
// It uses tea.WithAltScreen and tea.WithMouseCellMotion options by default.
func (r *DefaultProgramRunner) Run(model tea.Model, ready func(state.Sender)) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if ready != nil {
		ready(p)
	}

	_, err := p.Run()
	return err
}

// ChocoClientFactory defines the interface for creating choco.Client instances.
// This abstraction allows for dependency injection and easier testing.
type ChocoClientFactory interface {
	// NewClient creates a new choco.Client instance.
	NewClient() choco.Client
}

// DefaultChocoClientFactory builds clients from the choco_* configuration keys.
type DefaultChocoClientFactory struct{}

// NewDefaultChocoClientFactory creates a new DefaultChocoClientFactory.
func NewDefaultChocoClientFactory() *DefaultChocoClientFactory {
	return &DefaultChocoClientFactory{}
}

// NewClient creates a new choco.Client using choco.OptionsFromConfig.
func (f *DefaultChocoClientFactory) NewClient() choco.Client {
	return choco.NewDefaultClient(choco.OptionsFromConfig()...)
}

// SettingsLoader defines the interface for persisting TUI preferences.
type SettingsLoader interface {
	Load() (*settings.Settings, error)
	Save(s *settings.Settings) error
}

// DefaultSettingsLoader reads and writes settings.Path().
type DefaultSettingsLoader struct{}

// NewDefaultSettingsLoader creates a new DefaultSettingsLoader.
func NewDefaultSettingsLoader() *DefaultSettingsLoader {
	return &DefaultSettingsLoader{}
}

// Load reads the settings file.
func (l *DefaultSettingsLoader) Load() (*settings.Settings, error) {
	return settings.Load(settings.Path())
}

// Save writes the settings file.
func (l *DefaultSettingsLoader) Save(s *settings.Settings) error {
	return settings.Save(settings.Path(), s)
}
