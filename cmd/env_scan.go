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
	scanRoot string
	scanJSON bool
)

func init() {
	envScanCmd.Flags().StringVar(&scanRoot, "root", "", "directory to scan (defaults to the apps directory)")
	envScanCmd.Flags().BoolVar(&scanJSON, "json", false, "output in JSON format")
}

func resetEnvScanState() {
	scanRoot = ""
	scanJSON = false
}

var envScanCmd = &cobra.Command{
	Use:   "scan [PATTERN...]",
	Short: "Find env files across all apps",
	Long: `Finds env files under the apps directory and lists the keys each defines.
Values are never shown.

Patterns are paths or globs relative to the root; ** matches any number of
directories. With no pattern every .env* file is found.

Examples:
  envkeep env scan
  envkeep env scan "*/.env.local"
  envkeep env scan --root ~/work "**/.env.production"`,
	RunE: runEnvScan,
}

func runEnvScan(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env scan command")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Scanning for env files...")
	defer cleanup()

	result, err := workflows.ScanEnv(context.Background(), ws, workflows.ScanEnvOptions{
		Root:     scanRoot,
		Patterns: args,
	})
	if err != nil {
		spinner.FinalMSG = formatError(err)
		if isUnexpectedError(err) {
			return &ReportedError{Err: err}
		}
		return nil
	}

	if scanJSON {
		spinner.FinalMSG = ""
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal scan result to JSON: %v", err)
		}
		spinner.FinalMSG = string(data)
		return nil
	}

	msg := ""
	for _, f := range result.Files {
		msg += fmt.Sprintf("%s %s\n", ui.Highlight.Sprint(f.App), ui.Path.Sprint(f.Path))
		for _, key := range f.Keys {
			msg += "  " + ui.Key.Sprint(key) + "\n"
		}
	}
	spinner.FinalMSG = msg + fmt.Sprintf("%s Found %d env files under %s",
		ui.Success.Sprint("✓"), len(result.Files), ui.Path.Sprint(result.Root))
	return nil
}
