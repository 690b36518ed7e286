// Package settings persists TUI preferences between runs.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/cristianoliveira/choco-tui/internal/theme"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileModeDir is the permission for the settings directory.
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for the settings file.
	FileModeFile os.FileMode = 0644
	// FileExtTOML is the file extension for TOML files.
	FileExtTOML = ".toml"
)

// Settings holds the preferences the TUI remembers.
type Settings struct {
	// Theme is the last theme chosen with the toggle key.
	// Empty means use the configured theme.
	Theme string `toml:"theme"`
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{}
}

// Validate checks that settings values are valid.
func Validate(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if s.Theme != "" && !slices.Contains(theme.Names(), s.Theme) {
		return fmt.Errorf("invalid theme %q: %w", s.Theme, theme.ErrUnknownTheme)
	}
	return nil
}

// Load reads settings from path. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Save writes settings to path, replacing the file atomically.
func Save(path string, s *Settings) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# choco-tui preferences, rewritten on exit\n")
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tui-*"+FileExtTOML)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Chmod(FileModeFile); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
