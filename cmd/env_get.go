package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var envGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value of one variable",
	Long: `Prints the raw value of one variable, suitable for command substitution.

Exits non-zero if the key is not present.

Examples:
  envkeep env get DATABASE_URL --app my-app`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting env get command")

		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		value, err := workflows.GetEnv(context.Background(), ws, workflows.GetEnvOptions{
			Target: envTarget(),
			Key:    args[0],
		})
		if err != nil {
			return err
		}

		fmt.Println(value)
		return nil
	},
}
