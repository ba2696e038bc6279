package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	envListReveal bool
	envListJSON   bool
)

func init() {
	envListCmd.Flags().BoolVar(&envListReveal, "reveal", false, "print values instead of masking them")
	envListCmd.Flags().BoolVar(&envListJSON, "json", false, "output keys (and values with --reveal) as JSON")
}

func resetEnvListState() {
	envListReveal = false
	envListJSON = false
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the variables of an app",
	Long: `Lists the variables in the app's env file in file order.

Values are masked unless --reveal is given.

Examples:
  envkeep env list --app my-app
  envkeep env list --dir ./my-app --reveal`,
	Args: cobra.NoArgs,
	RunE: runEnvList,
}

func runEnvList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env list command")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	result, err := workflows.ListEnv(context.Background(), ws, workflows.ListEnvOptions{Target: envTarget()})
	if err != nil {
		return reportError(err)
	}
	Logger.Debugf("Listing %d variables from %s", len(result.Vars), result.Path)

	if envListJSON {
		type jsonVar struct {
			Key   string `json:"key"`
			Value string `json:"value,omitempty"`
		}
		out := make([]jsonVar, 0, len(result.Vars))
		for _, v := range result.Vars {
			item := jsonVar{Key: v.Key}
			if envListReveal {
				item.Value = v.Value
			}
			out = append(out, item)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to marshal variables to JSON: %v", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !result.Exists {
		fmt.Println(ui.Info.Sprint("ℹ") + " No env file at " + ui.Path.Sprint(result.Path))
		return nil
	}
	if len(result.Vars) == 0 {
		fmt.Println(ui.Info.Sprint("ℹ") + " " + ui.Path.Sprint(result.Path) + " has no variables")
		return nil
	}

	fmt.Println(ui.Path.Sprint(result.Path) + ":")
	for _, v := range result.Vars {
		value := ui.Secret.Sprint(secrets.Masked(v.Value))
		if envListReveal {
			value = v.Value
		}
		fmt.Printf("  %s=%s\n", ui.Key.Sprint(v.Key), value)
	}
	return nil
}
