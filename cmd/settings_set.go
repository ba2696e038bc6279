package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var settingsSetCmd = &cobra.Command{
	Use:   "set FIELD VALUE",
	Short: "Replace one top-level setting",
	Long: `Replaces one top-level field of the settings document.

VALUE is parsed as JSON; anything that is not valid JSON is stored as a
string. The value null removes the field, restoring its default if it has
one. Objects are replaced wholesale, so pass every nested field.

The document is validated before it is written. An invalid value leaves the
file unchanged.

Examples:
  envkeep settings set releaseChannel beta
  envkeep settings set maxChatTurnsInContext 10
  envkeep settings set selectedModel '{"name":"gpt-4.1","provider":"openai"}'
  envkeep settings set selectedTemplateId null`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting settings set command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		result, err := workflows.SetSetting(context.Background(), ws, workflows.SetSettingOptions{
			Field: args[0],
			Value: args[1],
		})
		if err != nil {
			return reportError(err)
		}

		if result.Removed {
			fmt.Println(ui.Success.Sprint("✓") + " Removed " + ui.Key.Sprint(result.Field))
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + " Updated " + ui.Key.Sprint(result.Field))
		return nil
	},
}
