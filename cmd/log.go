package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/audit"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logApp       string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	addLoggingFlags(LogCmd)
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVarP(&logApp, "app", "a", "", "filter by app name")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// ResetLogState resets the log command's global state for testing.
func ResetLogState() {
	verbose = false
	debug = false
	logLimit = 0
	logReverse = false
	logApp = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
	resetCobraFlagState(LogCmd)
}

// LogCmd is the top-level log command.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of env and settings changes.

Entries record which keys and fields changed, never their values.

Examples:
  envkeep log                                # View full log
  envkeep log -n 10                          # Last 10 entries
  envkeep log --reverse                      # Most recent first
  envkeep log --app my-app                   # Filter by app
  envkeep log --operation env.set,env.unset  # Filter by operation
  envkeep log --since 2024-01-01             # Filter by date
  envkeep log --json                         # JSON output`,
	Args:             cobra.NoArgs,
	PersistentPreRun: initLogger,
	RunE:             runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Loading audit log...")

	result, err := workflows.Log(context.Background(), ws, workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		App:        logApp,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		cleanup()
		if isLogUnexpectedError(err) {
			return &ReportedError{Err: err}
		}
		return nil
	}

	Logger.Debugf("Showing %d of %d entries", len(result.Entries), result.TotalEntriesBeforeFilter)
	spinner.FinalMSG = ""
	cleanup()

	switch {
	case len(result.Entries) == 0 && result.TotalEntriesBeforeFilter == 0:
		fmt.Println("No audit log entries found.")
	case len(result.Entries) == 0:
		fmt.Println("No audit log entries found matching the filters.")
	case logJSON:
		return outputLogJSON(result.Entries)
	default:
		for _, e := range result.Entries {
			fmt.Println(formatLogLine(e, logOneline))
		}
	}
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once you change an env file or setting."

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatLogLine renders one entry. The app column is blank for settings
// operations.
func formatLogLine(e audit.Entry, oneline bool) string {
	if oneline {
		return strings.Join(strings.Fields(fmt.Sprintf("%s %s %s %s",
			workflows.FormatDate(e.Timestamp), e.Operation, e.App, workflows.FormatDetailsOneline(e))), " ")
	}
	return fmt.Sprintf("%-19s  %-14s  %-16s  %s",
		workflows.FormatDateTime(e.Timestamp), e.Operation, e.App, workflows.FormatDetails(e))
}
