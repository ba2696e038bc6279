package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/envfile"
	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var envSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Add or replace variables",
	Long: `Adds or replaces variables in the app's env file, creating it if needed.

Existing variables keep their position. Values are quoted as needed when the
file is written.

Examples:
  envkeep env set API_URL=https://api.example.com --app my-app
  envkeep env set "GREETING=hello world" DEBUG=1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnvSet,
}

// parseAssignments splits KEY=VALUE arguments at the first '='.
func parseAssignments(args []string) ([]envfile.EnvVar, error) {
	vars := make([]envfile.EnvVar, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected KEY=VALUE, got %q", arg)
		}
		vars = append(vars, envfile.EnvVar{Key: key, Value: value})
	}
	return vars, nil
}

func runEnvSet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env set command")

	vars, err := parseAssignments(args)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	result, err := workflows.SetEnv(context.Background(), ws, workflows.SetEnvOptions{
		Target: envTarget(),
		Vars:   vars,
	})
	if err != nil {
		return reportError(err)
	}

	for _, key := range result.Added {
		fmt.Printf("  %s %s\n", ui.Success.Sprint("+"), ui.Key.Sprint(key))
	}
	for _, key := range result.Updated {
		fmt.Printf("  %s %s\n", ui.Warning.Sprint("~"), ui.Key.Sprint(key))
	}
	fmt.Println(ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(result.Path))
	return nil
}
