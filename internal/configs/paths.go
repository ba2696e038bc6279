package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "envkeep"

// Paths are the per-user locations envkeep uses before any config is read.
type Paths struct {
	ConfigDir  string
	ConfigFile string
	DataDir    string
	AppsDir    string
}

// DefaultPaths resolves the platform locations for the current user. Data
// follows XDG_DATA_HOME, falling back to ~/.local/share.
func DefaultPaths() (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	toolConfigDir := filepath.Join(configDir, appName)
	return Paths{
		ConfigDir:  toolConfigDir,
		ConfigFile: filepath.Join(toolConfigDir, "config.toml"),
		DataDir:    filepath.Join(dataDir, appName),
		AppsDir:    filepath.Join(homeDir, appName+"-apps"),
	}, nil
}
