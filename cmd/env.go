package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	envApp string
	envDir string

	EnvCmd = &cobra.Command{
		Use:   "env",
		Short: "Manage an app's .env.local file",
		Long: `Reads and edits the env file of an app project.

The app is selected with --app NAME (a directory under the apps root) or
--dir PATH. With neither, the current directory is used.

Values are never written to the audit log, only key names.`,
		PersistentPreRun: initLogger,
	}
)

func init() {
	addLoggingFlags(EnvCmd)
	EnvCmd.PersistentFlags().StringVarP(&envApp, "app", "a", "", "app name under the apps directory")
	EnvCmd.PersistentFlags().StringVar(&envDir, "dir", "", "app directory (overrides --app)")

	EnvCmd.AddCommand(envListCmd)
	EnvCmd.AddCommand(envGetCmd)
	EnvCmd.AddCommand(envSetCmd)
	EnvCmd.AddCommand(envUnsetCmd)
	EnvCmd.AddCommand(envImportCmd)
	EnvCmd.AddCommand(envExportCmd)
	EnvCmd.AddCommand(envScanCmd)
}

func envTarget() workflows.Target {
	return workflows.Target{App: envApp, Dir: envDir}
}

// GetEnvCmd returns the EnvCmd for testing.
func GetEnvCmd() *cobra.Command {
	return EnvCmd
}

// ResetEnvState resets all env command global variables to their default values for testing.
func ResetEnvState() {
	verbose = false
	debug = false
	envApp = ""
	envDir = ""
	resetEnvListState()
	resetEnvImportState()
	resetEnvExportState()
	resetEnvScanState()
	resetCobraFlagState(EnvCmd)
}

// resetCobraFlagState clears the Changed mark of every flag under cmd to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
