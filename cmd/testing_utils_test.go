package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/PolarWolf314/envkeep/internal/configs"
	logger "github.com/PolarWolf314/envkeep/internal/logging"
)

// testEnv holds the directories of an isolated envkeep installation.
type testEnv struct {
	root    string
	appsDir string
	dataDir string
}

// setupTestEnvironment points every envkeep location into a temporary
// directory and enables test mode so no real keychain is touched.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		root:    root,
		appsDir: filepath.Join(root, "apps"),
		dataDir: filepath.Join(root, "data"),
	}

	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "share"))
	t.Setenv(configs.EnvAppsDir, env.appsDir)
	t.Setenv(configs.EnvDataDir, env.dataDir)
	t.Setenv(configs.EnvTestMode, "true")
	t.Setenv("NO_COLOR", "1")
	keyring.MockInit()

	if err := os.MkdirAll(env.appsDir, 0755); err != nil {
		t.Fatalf("Failed to create apps dir: %v", err)
	}
	return env
}

// addApp creates an app directory holding env as its .env.local.
func (e *testEnv) addApp(t *testing.T, name, env string) string {
	t.Helper()
	dir := filepath.Join(e.appsDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	if env != "" {
		if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte(env), 0600); err != nil {
			t.Fatalf("Failed to write env file: %v", err)
		}
	}
	return dir
}

func (e *testEnv) readEnv(t *testing.T, app string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.appsDir, app, ".env.local"))
	if err != nil {
		t.Fatalf("Failed to read env file: %v", err)
	}
	return string(data)
}

func (e *testEnv) settingsPath() string {
	return filepath.Join(e.dataDir, "user-settings.json")
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// withStdin replaces os.Stdin with a pipe holding content for the rest of the test.
func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = original
		r.Close()
	})
}

// createTestCLI creates a complete CLI instance with fresh command state.
func createTestCLI(args ...string) *cobra.Command {
	ResetEnvState()
	ResetSettingsState()
	ResetConfigState()
	ResetLogState()
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "envkeep",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(EnvCmd, SettingsCmd, ConfigCmd, LogCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// run executes the CLI with args and returns its combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// mustRun is run for commands that are expected to succeed.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := run(t, args...)
	if err != nil {
		t.Fatalf("envkeep %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
