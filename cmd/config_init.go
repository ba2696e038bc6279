package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/configs"
	"github.com/PolarWolf314/envkeep/internal/ui"
)

var (
	configInitAppsDir string
	configInitDataDir string
	configInitForce   bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitAppsDir, "apps-dir", "", "root directory of app projects")
	configInitCmd.Flags().StringVar(&configInitDataDir, "data-dir", "", "directory holding user-settings.json")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config.toml")
}

func resetConfigInitState() {
	configInitAppsDir = ""
	configInitDataDir = ""
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config.toml",
	Long: `Writes config.toml with the default locations, or with the directories
given as flags. An existing file is kept unless --force is given.

Examples:
  envkeep config init
  envkeep config init --apps-dir ~/code/apps --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		paths, err := configs.DefaultPaths()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve paths: %v", err)
		}
		Logger.Debugf("Config file: %s", paths.ConfigFile)

		if _, err := os.Stat(paths.ConfigFile); err == nil && !configInitForce {
			fmt.Println(ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(paths.ConfigFile) + " already exists")
			fmt.Println(ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		}

		config := configs.Default(paths)
		if configInitAppsDir != "" {
			config.AppsDir = configInitAppsDir
		}
		if configInitDataDir != "" {
			config.DataDir = configInitDataDir
		}

		if err := configs.Save(paths.ConfigFile, config); err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Wrote " + ui.Path.Sprint(paths.ConfigFile))
		return nil
	},
}
