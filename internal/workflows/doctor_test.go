package workflows

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
)

func findCheck(t *testing.T, result *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, c := range result.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("Check %q not found in %+v", name, result.Checks)
	return CheckResult{}
}

func TestDoctorHealthy(t *testing.T) {
	ctx := context.Background()
	tw := newTestWorkspace(t)
	if _, err := SetSecret(ctx, tw.Workspace, SetSecretOptions{Slot: "github", Value: "gh"}); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}

	result, err := Doctor(ctx, tw.Workspace, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if result.Summary.Errors != 0 || result.Summary.Warnings != 0 {
		t.Errorf("Expected all checks to pass, got %+v", result.Checks)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %v", result.Suggestions)
	}
}

func TestDoctorMissingSettings(t *testing.T) {
	tw := newTestWorkspace(t)

	result, err := Doctor(context.Background(), tw.Workspace, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if c := findCheck(t, result, "Settings file"); c.Status != CheckWarning {
		t.Errorf("Expected warning for missing settings, got %+v", c)
	}
	if _, err := os.Stat(tw.Store.Path()); !os.IsNotExist(err) {
		t.Errorf("Doctor must not create the settings file")
	}
}

func TestDoctorNamesUndecryptableSecret(t *testing.T) {
	ctx := context.Background()
	tw := newTestWorkspace(t)
	tw.Store.Write(settings.Patch{
		"githubAccessToken": secrets.NewSecret("gh"),
		"vercelAccessToken": secrets.NewSecret("vc"),
	})
	tw.backend.fail = true

	result, err := Doctor(ctx, tw.Workspace, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	c := findCheck(t, result, "Stored secrets")
	if c.Status != CheckError {
		t.Fatalf("Expected error, got %+v", c)
	}
	if !strings.Contains(c.Message, "githubAccessToken") || !strings.Contains(c.Message, "vercelAccessToken") {
		t.Errorf("Expected failing fields to be named, got %q", c.Message)
	}
	if result.Summary.Errors == 0 || len(result.Suggestions) == 0 {
		t.Errorf("Expected errors and suggestions, got %+v", result)
	}
}

func TestDoctorCorruptSettings(t *testing.T) {
	tw := newTestWorkspace(t)
	if err := os.MkdirAll(tw.Config.DataDir, 0700); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	if err := os.WriteFile(tw.Store.Path(), []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	result, err := Doctor(context.Background(), tw.Workspace, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	if c := findCheck(t, result, "Settings file"); c.Status != CheckError {
		t.Errorf("Expected error for corrupt settings, got %+v", c)
	}
	if c := findCheck(t, result, "Settings file permissions"); c.Status != CheckWarning {
		t.Errorf("Expected warning for 0644 settings, got %+v", c)
	}
}

func TestDoctorPlaintextSecrets(t *testing.T) {
	ctx := context.Background()
	tw := newTestWorkspace(t)
	tw.backend.available = false
	tw.Store.Write(settings.Patch{"githubAccessToken": secrets.NewSecret("gh")})

	result, err := Doctor(ctx, tw.Workspace, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if c := findCheck(t, result, "Secure storage"); c.Status != CheckWarning {
		t.Errorf("Expected secure storage warning, got %+v", c)
	}

	tw.backend.available = true
	ws := NewWorkspaceWithBackend(tw.Config, tw.backend, tw.Logger)
	result, err = Doctor(ctx, ws, DoctorOptions{})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if c := findCheck(t, result, "Plaintext secrets"); c.Status != CheckWarning {
		t.Errorf("Expected plaintext warning, got %+v", c)
	}
}

func TestDoctorToolConfig(t *testing.T) {
	tw := newTestWorkspace(t)
	configPath := filepath.Join(tw.root, "config.toml")
	if err := os.WriteFile(configPath, []byte("apps_dir = [broken"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	result, err := Doctor(context.Background(), tw.Workspace, DoctorOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if c := findCheck(t, result, "Tool configuration"); c.Status != CheckError {
		t.Errorf("Expected config error, got %+v", c)
	}
}

func TestDoctorAppChecks(t *testing.T) {
	tw := newTestWorkspace(t)
	appDir := tw.addApp(t, "web", "A=1")

	result, err := Doctor(context.Background(), tw.Workspace, DoctorOptions{AppDir: appDir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if c := findCheck(t, result, "Gitignore configuration"); c.Status != CheckWarning {
		t.Errorf("Expected gitignore warning, got %+v", c)
	}
	if c := findCheck(t, result, "Env file permissions"); c.Status != CheckPass {
		t.Errorf("Expected env file permissions to pass, got %+v", c)
	}

	if err := os.WriteFile(filepath.Join(appDir, ".gitignore"), []byte("node_modules/\n.env*\n"), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}
	result, err = Doctor(context.Background(), tw.Workspace, DoctorOptions{AppDir: appDir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if c := findCheck(t, result, "Gitignore configuration"); c.Status != CheckPass {
		t.Errorf("Expected gitignore to pass, got %+v", c)
	}
}

func TestGitignoreMatches(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"exact", ".env.local", true},
		{"wildcard", ".env*", true},
		{"suffix", "*.local", true},
		{"rooted", "/.env.local", true},
		{"recursive", "**/.env.local", true},
		{"comment", "# .env.local", false},
		{"other file", ".env", false},
		{"negated", ".env*\n!.env.local", false},
		{"directory only", ".env.local/", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gitignoreMatches(tt.content, ".env.local"); got != tt.want {
				t.Errorf("gitignoreMatches(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestCheckStatusJSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: CheckWarning, Message: "m"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("Expected status as string, got %s", data)
	}
}
