package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PolarWolf314/envkeep/internal/envfile"
	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
)

// Environment variables that override the config file.
const (
	EnvDataDir        = "ENVKEEP_DATA_DIR"
	EnvAppsDir        = "ENVKEEP_APPS_DIR"
	EnvKeyringService = "ENVKEEP_KEYRING_SERVICE"
	EnvTestMode       = "ENVKEEP_TEST_MODE"
)

// AuditFileName is the audit log inside the data directory.
const AuditFileName = "audit.jsonl"

// Config is the tool configuration stored in config.toml.
type Config struct {
	DataDir        string `toml:"data_dir" json:"data_dir"`
	AppsDir        string `toml:"apps_dir" json:"apps_dir"`
	EnvFileName    string `toml:"env_file_name" json:"env_file_name"`
	KeyringService string `toml:"keyring_service" json:"keyring_service"`
	TestMode       bool   `toml:"test_mode" json:"test_mode"`
}

// Default returns the configuration used when no file exists.
func Default(paths Paths) *Config {
	return &Config{
		DataDir:        paths.DataDir,
		AppsDir:        paths.AppsDir,
		EnvFileName:    envfile.DefaultFileName,
		KeyringService: secrets.DefaultKeyringService,
	}
}

// Load reads the config at path. A missing file yields the defaults; keys
// left empty in the file are filled from the defaults.
func Load(path string, paths Paths) (*Config, error) {
	config := Default(paths)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.fillDefaults(paths)
	return config, nil
}

// Save writes config to path.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment. getenv is
// os.Getenv outside of tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvAppsDir); v != "" {
		c.AppsDir = v
	}
	if v := getenv(EnvKeyringService); v != "" {
		c.KeyringService = v
	}
	if v := getenv(EnvTestMode); v != "" {
		testMode, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvTestMode, v, err)
		}
		c.TestMode = testMode
	}
	return nil
}

func (c *Config) fillDefaults(paths Paths) {
	defaults := Default(paths)
	if c.DataDir == "" {
		c.DataDir = defaults.DataDir
	}
	if c.AppsDir == "" {
		c.AppsDir = defaults.AppsDir
	}
	if c.EnvFileName == "" {
		c.EnvFileName = defaults.EnvFileName
	}
	if c.KeyringService == "" {
		c.KeyringService = defaults.KeyringService
	}
}

// SettingsPath is the user settings document inside the data directory.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, settings.FileName)
}

// AuditPath is the audit log inside the data directory.
func (c *Config) AuditPath() string {
	return filepath.Join(c.DataDir, AuditFileName)
}

// Resolve loads the config file from the default location and applies
// environment overrides.
func Resolve() (*Config, Paths, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, Paths{}, err
	}

	config, err := Load(paths.ConfigFile, paths)
	if err != nil {
		return nil, paths, err
	}

	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, paths, err
	}
	return config, paths, nil
}
