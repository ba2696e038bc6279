package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	exportFormat string
	exportOutput string
	exportKeys   []string
)

func init() {
	envExportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(workflows.ExportDotenv), "output format (dotenv or json)")
	envExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	envExportCmd.Flags().StringSliceVarP(&exportKeys, "keys", "k", nil, "only export these keys (comma-separated)")
}

func resetEnvExportState() {
	exportFormat = string(workflows.ExportDotenv)
	exportOutput = ""
	exportKeys = nil
}

var envExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an app's variables as dotenv or JSON",
	Long: `Writes the app's variables to stdout or a file.

Files written with --output are created with 0600 permissions.

Examples:
  envkeep env export --app my-app > backup.env
  envkeep env export --format json --keys API_URL,DEBUG
  envkeep env export -o vars.json -f json`,
	Args: cobra.NoArgs,
	RunE: runEnvExport,
}

func runEnvExport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env export command")
	Logger.Debugf("Flags: format=%s, output=%s, keys=%v", exportFormat, exportOutput, exportKeys)

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	result, err := workflows.ExportEnv(context.Background(), ws, workflows.ExportEnvOptions{
		Target:     envTarget(),
		Format:     workflows.ExportFormat(exportFormat),
		Keys:       exportKeys,
		OutputPath: exportOutput,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		return &ReportedError{Err: err}
	}

	if result.OutputPath == "" {
		fmt.Print(string(result.Data))
		return nil
	}

	fmt.Printf("%s Exported %d variables to %s\n", ui.Success.Sprint("✓"), result.Count, ui.Path.Sprint(result.OutputPath))
	return nil
}
