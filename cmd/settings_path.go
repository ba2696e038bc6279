package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of user-settings.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		fmt.Println(ws.Store.Path())
		return nil
	},
}
