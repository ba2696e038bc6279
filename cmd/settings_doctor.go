package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/utils"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	doctorJSONOutput bool
	doctorApp        string
	doctorDir        string
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
	doctorCmd.Flags().StringVarP(&doctorApp, "app", "a", "", "also check this app's env file")
	doctorCmd.Flags().StringVar(&doctorDir, "dir", "", "also check the env file in this directory")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorApp = ""
	doctorDir = ""
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on settings and secrets",
	Long: `Runs a series of health checks and reports issues.

The settings file is read without falling back to the defaults, so doctor
names the field that makes it unusable.

The doctor command checks:
  - Tool configuration validity
  - Settings file JSON and schema
  - That every stored secret decrypts
  - Secure storage availability and plaintext secrets
  - Settings file permissions
  - With --app or --dir: env file permissions and .gitignore coverage

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	opts := workflows.DoctorOptions{ConfigPath: configPath}
	if doctorApp != "" || doctorDir != "" {
		appDir, err := utils.ResolveAppDir(ws.Config.AppsDir, doctorApp, doctorDir)
		if err != nil {
			return reportError(err)
		}
		opts.AppDir = appDir
	}

	spinner, cleanup := startSpinner("Running health checks...")

	result, err := workflows.Doctor(context.Background(), ws, opts)
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to run health checks: " + err.Error()
		cleanup()
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: %s", check.Name, check.Status)
	}

	spinner.FinalMSG = ""
	cleanup()
	if doctorJSONOutput {
		if err := outputDoctorJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorResults(result)
	}

	switch {
	case result.Summary.Errors > 0:
		doctorExitFunc(2)
	case result.Summary.Warnings > 0:
		doctorExitFunc(1)
	}
	return nil
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func checkIcon(status workflows.CheckStatus) string {
	switch status {
	case workflows.CheckPass:
		return ui.Success.Sprint("✓")
	case workflows.CheckWarning:
		return ui.Warning.Sprint("⚠")
	default:
		return ui.Error.Sprint("✗")
	}
}

// printDoctorResults prints one line per check, a summary, and the
// deduplicated suggestions.
func printDoctorResults(result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		fmt.Printf("%s %-26s %s\n", checkIcon(check.Status), check.Name, check.Message)
	}

	summary := []string{fmt.Sprintf("%d passed", result.Summary.Passed)}
	if n := result.Summary.Warnings; n > 0 {
		summary = append(summary, ui.Warning.Sprintf("%d warning(s)", n))
	}
	if n := result.Summary.Errors; n > 0 {
		summary = append(summary, ui.Error.Sprintf("%d error(s)", n))
	}
	fmt.Println()
	fmt.Println("Summary: " + strings.Join(summary, ", "))

	if len(result.Suggestions) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Suggestions:")
	for _, suggestion := range result.Suggestions {
		fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), suggestion)
	}
}
