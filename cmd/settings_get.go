package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var settingsGetReveal bool

func init() {
	settingsGetCmd.Flags().BoolVar(&settingsGetReveal, "reveal", false, "show secrets in plaintext")
}

func resetSettingsGetState() {
	settingsGetReveal = false
}

var settingsGetCmd = &cobra.Command{
	Use:   "get FIELD",
	Short: "Print one top-level setting as JSON",
	Long: `Prints one top-level field of the effective settings as JSON. A field that
is not set prints null.

Examples:
  envkeep settings get selectedModel
  envkeep settings get githubAccessToken --reveal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings get command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		value, err := workflows.GetSetting(context.Background(), ws, workflows.GetSettingOptions{
			Field:  args[0],
			Reveal: settingsGetReveal,
		})
		if err != nil {
			return reportError(err)
		}

		fmt.Println(string(value))
		return nil
	},
}
