package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/envkeep/internal/configs"
)

func TestConfigInit(t *testing.T) {
	setupTestEnvironment(t)
	paths, err := configs.DefaultPaths()
	if err != nil {
		t.Fatalf("Failed to resolve paths: %v", err)
	}
	configFile := paths.ConfigFile

	output := mustRun(t, "config", "init", "--apps-dir", "/srv/apps")
	if !strings.Contains(output, "Wrote") {
		t.Errorf("Expected success message, got: %s", output)
	}

	var config configs.Config
	if err := configs.LoadTOML(configFile, &config); err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.AppsDir != "/srv/apps" {
		t.Errorf("Expected apps_dir /srv/apps, got %q", config.AppsDir)
	}
	if config.EnvFileName != ".env.local" {
		t.Errorf("Expected default env file name, got %q", config.EnvFileName)
	}

	info, err := os.Stat(configFile)
	if err != nil {
		t.Fatalf("Failed to stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %04o", info.Mode().Perm())
	}

	output = mustRun(t, "config", "init", "--apps-dir", "/other")
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected existing config to be kept, got: %s", output)
	}

	mustRun(t, "config", "init", "--apps-dir", "/other", "--force")
	if err := configs.LoadTOML(configFile, &config); err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.AppsDir != "/other" {
		t.Errorf("Expected --force to overwrite, got %q", config.AppsDir)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupTestEnvironment(t)

	output := mustRun(t, "config", "show", "--json")
	var shown map[string]any
	if err := json.Unmarshal([]byte(output), &shown); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", output, err)
	}

	if shown["apps_dir"] != env.appsDir {
		t.Errorf("Expected ENVKEEP_APPS_DIR override, got %v", shown["apps_dir"])
	}
	if shown["test_mode"] != true {
		t.Errorf("Expected test mode from the environment, got %v", shown["test_mode"])
	}
	if shown["settings_path"] != env.settingsPath() {
		t.Errorf("Expected settings path %s, got %v", env.settingsPath(), shown["settings_path"])
	}

	output = mustRun(t, "config", "show")
	if !strings.Contains(output, env.dataDir) {
		t.Errorf("Expected data directory in output, got: %s", output)
	}
}

func TestConfigShowRejectsBadTestMode(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv(configs.EnvTestMode, "maybe")

	if _, err := run(t, "config", "show"); err == nil {
		t.Error("Expected error for invalid ENVKEEP_TEST_MODE")
	}
}
