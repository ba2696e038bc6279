package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage envkeep's own configuration",
	Long: `Provides commands for the tool configuration in config.toml.

The configuration sets where user-settings.json and the audit log live
(data_dir), where app projects live (apps_dir), the env file name, and the
keychain service that holds the encryption key. Each can be overridden with
an environment variable:

  ENVKEEP_DATA_DIR, ENVKEEP_APPS_DIR, ENVKEEP_KEYRING_SERVICE, ENVKEEP_TEST_MODE

Examples:
  # Write a config.toml with the defaults
  envkeep config init

  # Show the effective configuration
  envkeep config show`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(ConfigCmd)

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	verbose = false
	debug = false
	resetConfigInitState()
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
