package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var envUnsetCmd = &cobra.Command{
	Use:   "unset KEY...",
	Short: "Remove variables",
	Long: `Removes variables from the app's env file. Keys that are not present are
reported and ignored.

Examples:
  envkeep env unset OLD_TOKEN --app my-app`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting env unset command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		result, err := workflows.UnsetEnv(context.Background(), ws, workflows.UnsetEnvOptions{
			Target: envTarget(),
			Keys:   args,
		})
		if err != nil {
			return reportError(err)
		}

		for _, key := range result.Removed {
			fmt.Printf("  %s %s\n", ui.Error.Sprint("-"), ui.Key.Sprint(key))
		}
		for _, key := range result.Missing {
			fmt.Printf("  %s %s %s\n", ui.Warning.Sprint("⚠"), ui.Key.Sprint(key), ui.Muted.Sprint("not set"))
		}
		if len(result.Removed) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " Nothing to remove")
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(result.Path))
		return nil
	},
}
