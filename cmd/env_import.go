package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/utils"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	importReplace bool
	importDryRun  bool
)

func init() {
	envImportCmd.Flags().BoolVar(&importReplace, "replace", false, "overwrite variables that already exist")
	envImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show what would change without writing")
}

func resetEnvImportState() {
	importReplace = false
	importDryRun = false
}

var envImportCmd = &cobra.Command{
	Use:   "import [FILE...]",
	Short: "Import variables from other env files",
	Long: `Folds variables from env files into the app's env file. With no files,
env-format text is read from stdin.

By default existing variables are kept. Use --replace to overwrite them.

Examples:
  envkeep env import .env.example --app my-app
  envkeep env import shared.env --replace --dry-run
  cat secrets.env | envkeep env import --app my-app`,
	RunE: runEnvImport,
}

func runEnvImport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env import command")

	opts := workflows.ImportEnvOptions{
		Target:  envTarget(),
		Sources: args,
		Mode:    workflows.ImportModeMerge,
		DryRun:  importDryRun,
	}
	if importReplace {
		opts.Mode = workflows.ImportModeReplace
	}
	if len(args) == 0 {
		Logger.Debugf("No files given, reading stdin")
		data, err := utils.ReadStdin()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
		opts.Content = string(data)
	}

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Importing variables...")
	defer cleanup()

	result, err := workflows.ImportEnv(context.Background(), ws, opts)
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return &ReportedError{Err: err}
		}
		return nil
	}

	spinner.FinalMSG = formatImportResult(result)
	return nil
}

func formatImportResult(result *workflows.ImportEnvResult) string {
	var msg string
	if result.DryRun {
		msg = ui.Warning.Sprint("[dry-run]") + " Would import into " + ui.Path.Sprint(result.Path) + "\n"
	}
	for _, key := range result.Added {
		msg += fmt.Sprintf("  %s %s\n", ui.Success.Sprint("+"), ui.Key.Sprint(key))
	}
	for _, key := range result.Updated {
		msg += fmt.Sprintf("  %s %s\n", ui.Warning.Sprint("~"), ui.Key.Sprint(key))
	}
	for _, key := range result.Skipped {
		msg += fmt.Sprintf("  %s %s %s\n", ui.Muted.Sprint("="), ui.Key.Sprint(key), ui.Muted.Sprint("kept existing"))
	}

	summary := fmt.Sprintf("%d added, %d updated, %d skipped (%s)",
		len(result.Added), len(result.Updated), len(result.Skipped), result.Mode)
	if result.DryRun {
		return msg + ui.Info.Sprint("ℹ") + " " + summary
	}
	return msg + ui.Success.Sprint("✓") + " Imported into " + ui.Path.Sprint(result.Path) + ": " + summary
}
