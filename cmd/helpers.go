package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/envkeep/internal/configs"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	logger "github.com/PolarWolf314/envkeep/internal/logging"
	"github.com/PolarWolf314/envkeep/internal/ui"
	"github.com/PolarWolf314/envkeep/internal/workflows"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// configPath is the config.toml the workspace was resolved from.
	configPath string
)

// addLoggingFlags registers --verbose and --debug on a top-level command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// initLogger is the PersistentPreRun of every top-level command.
func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
}

// loadWorkspace resolves config.toml and environment overrides into a
// workspace backed by the system keychain.
func loadWorkspace() (*workflows.Workspace, error) {
	config, paths, err := configs.Resolve()
	if err != nil {
		return nil, Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
	}
	configPath = paths.ConfigFile

	Logger.Debugf("Data directory: %s", config.DataDir)
	Logger.Debugf("Apps directory: %s", config.AppsDir)
	if config.TestMode {
		Logger.Debugf("Test mode is on: secrets will be stored as plaintext")
	}

	return workflows.NewWorkspace(config, Logger), nil
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError renders a workflow error for the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrAppNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--app") + " with a directory under the apps root, or " +
			ui.Flag.Sprint("--dir") + " with a path"

	case errors.Is(err, kerrors.ErrEnvFileNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep env set KEY=VALUE") + " to create it"

	case errors.Is(err, kerrors.ErrUnknownSetting):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep settings show") + " to list the fields"

	case errors.Is(err, kerrors.ErrUnknownSecretSlot):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep settings secret --help") + " to list the slots"

	case errors.Is(err, kerrors.ErrSettingsCorrupt), errors.Is(err, kerrors.ErrDecryptFailed):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envkeep settings doctor") + " for details"

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// ReportedError wraps an error whose message a command has already printed.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// reportError prints err with formatError and marks it as reported.
func reportError(err error) error {
	fmt.Println(formatError(err))
	return &ReportedError{Err: err}
}

// isUnexpectedError reports whether err should cause a non-zero exit after
// its message is printed. Finding nothing to act on is an expected outcome.
func isUnexpectedError(err error) bool {
	return !errors.Is(err, kerrors.ErrNoFilesFound)
}
