package settings

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/choco-tui/internal/config"
)

const tuiSettingsFilename = "tui" + FileExtTOML

// Path returns the settings file location under the configured config_dir,
// falling back to the XDG default.
func Path() string {
	configDir := config.Get("config_dir", "")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, "choco-tui")
	}
	return filepath.Join(configDir, tuiSettingsFilename)
}
