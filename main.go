package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "envkeep",
	Short: "envkeep - env files and encrypted user settings for AI app projects.",
	Long: `envkeep manages the local configuration of an AI app builder: the
.env.local file of each app project, and the user-settings.json document
whose API keys and OAuth tokens are encrypted with the system keychain.

Usage:
  envkeep <command> [flags]

Available Commands:
  env        Manage an app's .env.local file
  settings   Inspect and edit user-settings.json
  config     Manage envkeep's own configuration
  log        View the audit log

Run 'envkeep help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to envkeep! Run 'envkeep --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.EnvCmd)
	rootCmd.AddCommand(cmd.SettingsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
	rootCmd.AddCommand(cmd.LogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
