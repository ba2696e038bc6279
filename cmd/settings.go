package cmd

import (
	"github.com/spf13/cobra"
)

// SettingsCmd is the top-level settings command.
var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit user-settings.json",
	Long: `Reads and edits the user settings document in the data directory.

Secrets in the document (GitHub and Vercel tokens, Supabase and Neon OAuth
tokens, provider API keys) are encrypted with a key held in the system
keychain. When the keychain is unavailable they are stored as plaintext.

Use these commands to:
  - Show the effective settings (settings show)
  - Change one field (settings set)
  - Store or clear a secret (settings secret set, settings secret clear)
  - Diagnose a settings file that is being ignored (settings doctor)`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(SettingsCmd)

	SettingsCmd.AddCommand(settingsShowCmd)
	SettingsCmd.AddCommand(settingsGetCmd)
	SettingsCmd.AddCommand(settingsSetCmd)
	SettingsCmd.AddCommand(settingsPathCmd)
	SettingsCmd.AddCommand(settingsSecretCmd)
	SettingsCmd.AddCommand(doctorCmd)
}

// GetSettingsCmd returns the SettingsCmd for testing.
func GetSettingsCmd() *cobra.Command {
	return SettingsCmd
}

// ResetSettingsState resets all settings command global variables to their default values for testing.
func ResetSettingsState() {
	verbose = false
	debug = false
	resetSettingsShowState()
	resetSettingsGetState()
	resetSecretSetState()
	resetDoctorCommandState()
	resetCobraFlagState(SettingsCmd)
}
