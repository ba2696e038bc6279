package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	settingsShowReveal bool
	settingsShowJSON   bool
)

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsShowReveal, "reveal", false, "show secrets in plaintext")
	settingsShowCmd.Flags().BoolVar(&settingsShowJSON, "json", false, "output only the settings document as JSON")
}

func resetSettingsShowState() {
	settingsShowReveal = false
	settingsShowJSON = false
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long: `Shows the settings as the application sees them: stored values merged over
the defaults, with secrets decrypted and then masked.

If the file is missing it is created with the defaults. If it cannot be used
(bad JSON, a failed decrypt, an invalid field) the defaults are shown and the
file is left untouched; run 'envkeep settings doctor' to find out why.

Examples:
  envkeep settings show
  envkeep settings show --json --reveal`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings show command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		result, err := workflows.ShowSettings(context.Background(), ws, workflows.ShowSettingsOptions{
			Reveal: settingsShowReveal,
		})
		if err != nil {
			return reportError(err)
		}

		data, err := json.MarshalIndent(result.Settings, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal settings to JSON: %v", err)
		}

		if settingsShowJSON {
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Settings") + " " + ui.Muted.Sprint(result.Path) + ":")
		fmt.Println(string(data))
		fmt.Println()
		if result.Encrypted {
			fmt.Println(ui.Success.Sprint("✓") + " Secrets are encrypted with the system keychain")
		} else {
			fmt.Println(ui.Warning.Sprint("⚠") + " Secure storage unavailable: secrets are stored as plaintext")
		}
		return nil
	},
}
