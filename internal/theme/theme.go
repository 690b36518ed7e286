// Package theme holds the active color theme and notifies subscribers when it changes.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/choco-tui/internal/notify"
)

// ErrUnknownTheme is returned by Set for names that are not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme describes the colors used by the host surface.
type Theme struct {
	Name           string
	Background     lipgloss.Color
	Foreground     lipgloss.Color
	Highlight      lipgloss.Color
	Muted          lipgloss.Color
	Overlay        lipgloss.Color
	OverlayOpacity float64
}

// Built-in themes.
var (
	Light = Theme{
		Name:           "light",
		Background:     lipgloss.Color("#FAFAFA"),
		Foreground:     lipgloss.Color("#1F1F1F"),
		Highlight:      lipgloss.Color("#2B579A"),
		Muted:          lipgloss.Color("#8A8A8A"),
		Overlay:        lipgloss.Color("#FFFFFF"),
		OverlayOpacity: 0.7,
	}
	Dark = Theme{
		Name:           "dark",
		Background:     lipgloss.Color("#1E1E1E"),
		Foreground:     lipgloss.Color("#E6E6E6"),
		Highlight:      lipgloss.Color("#5A9BD5"),
		Muted:          lipgloss.Color("#6C6C6C"),
		Overlay:        lipgloss.Color("#000000"),
		OverlayOpacity: 0.8,
	}
)

var builtins = map[string]Theme{
	Light.Name: Light,
	Dark.Name:  Dark,
}

// Names returns the sorted names of the built-in themes.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in theme with the given name.
func Lookup(name string) (Theme, error) {
	t, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Change is delivered to subscribers after the current theme was replaced.
type Change struct {
	Old Theme
	New Theme
}

// Manager owns the current theme.
type Manager struct {
	mu       sync.RWMutex
	current  Theme
	handlers notify.Registry[Change]
}

// NewManager creates a Manager starting at initial.
func NewManager(initial Theme) *Manager {
	return &Manager{current: initial}
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set switches to the built-in theme called name.
func (m *Manager) Set(name string) error {
	t, err := Lookup(name)
	if err != nil {
		return err
	}
	m.Apply(t)
	return nil
}

// Toggle flips between the light and dark themes.
func (m *Manager) Toggle() Theme {
	next := Dark
	if m.Current().Name == Dark.Name {
		next = Light
	}
	m.Apply(next)
	return next
}

// Apply replaces the current theme and notifies every subscriber.
// Handlers run synchronously on the caller's goroutine, outside the lock,
// and observe the new theme through Current.
func (m *Manager) Apply(t Theme) {
	m.mu.Lock()
	change := Change{Old: m.current, New: t}
	m.current = t
	m.mu.Unlock()

	m.handlers.Notify(change)
}

// OnChanged registers fn for theme changes. The returned function removes the
// registration; calling it more than once is a no-op.
func (m *Manager) OnChanged(fn func(Change)) (remove func()) {
	return m.handlers.Add(fn)
}

// Subscribers returns the number of registered handlers.
func (m *Manager) Subscribers() int {
	return m.handlers.Len()
}
