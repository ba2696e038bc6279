package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/configs"
	"github.com/PolarWolf314/envkeep/internal/ui"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration after config.toml and environment overrides are
applied.

Examples:
  envkeep config show
  envkeep config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config, paths, err := configs.Resolve()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		if configShowJSON {
			output, err := json.MarshalIndent(struct {
				ConfigFile string `json:"config_file"`
				*configs.Config
				SettingsPath string `json:"settings_path"`
				AuditPath    string `json:"audit_path"`
			}{paths.ConfigFile, config, config.SettingsPath(), config.AuditPath()}, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Muted.Sprint(paths.ConfigFile) + ":")
		fmt.Println()
		fmt.Printf("  %-16s %s\n", "Data directory:", ui.Path.Sprint(config.DataDir))
		fmt.Printf("  %-16s %s\n", "Apps directory:", ui.Path.Sprint(config.AppsDir))
		fmt.Printf("  %-16s %s\n", "Env file:", config.EnvFileName)
		fmt.Printf("  %-16s %s\n", "Keychain:", config.KeyringService)
		fmt.Printf("  %-16s %t\n", "Test mode:", config.TestMode)
		fmt.Println()
		fmt.Printf("  %-16s %s\n", "Settings:", ui.Path.Sprint(config.SettingsPath()))
		fmt.Printf("  %-16s %s\n", "Audit log:", ui.Path.Sprint(config.AuditPath()))
		return nil
	},
}
