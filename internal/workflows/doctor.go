package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/envkeep/internal/configs"
	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// ConfigPath is the tool config file to check.
	ConfigPath string

	// AppDir, when set, adds checks for that app's env file.
	AppDir string
}

// Doctor runs health checks on envkeep's configuration and data.
//
// The doctor workflow checks:
//   - Tool configuration validity
//   - Settings file presence, JSON syntax and schema
//   - That every stored secret can be decrypted
//   - Secure storage availability and plaintext secrets
//   - Settings file permissions
//   - Apps directory presence
//   - For an app: env file permissions and gitignore coverage
//
// Unlike reading settings, doctor never falls back to defaults, so it names
// the exact field that makes the settings file unusable.
func Doctor(ctx context.Context, ws *Workspace, opts DoctorOptions) (*DoctorResult, error) {
	report := ws.Store.Inspect()

	checks := []func() CheckResult{
		func() CheckResult { return checkToolConfig(opts.ConfigPath) },
		func() CheckResult { return checkSettingsFile(ws, report) },
		func() CheckResult { return checkSecretsDecrypt(report) },
		func() CheckResult { return checkSecureStorage(ws) },
		func() CheckResult { return checkPlaintextSecrets(ws, report) },
		func() CheckResult { return checkFilePermissions("Settings file permissions", ws.Store.Path()) },
		func() CheckResult { return checkAppsDir(ws.Config.AppsDir) },
	}
	if opts.AppDir != "" {
		envPath := filepath.Join(opts.AppDir, ws.Config.EnvFileName)
		checks = append(checks,
			func() CheckResult { return checkFilePermissions("Env file permissions", envPath) },
			func() CheckResult { return checkGitignore(opts.AppDir, ws.Config.EnvFileName) },
		)
	}

	var results []CheckResult
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, check())
	}

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

// checkToolConfig checks that config.toml, if present, parses.
func checkToolConfig(path string) CheckResult {
	const name = "Tool configuration"
	if path == "" {
		return CheckResult{Name: name, Status: CheckPass, Message: "Using built-in defaults"}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: name, Status: CheckPass, Message: "No config.toml, using defaults"}
	}

	var config configs.Config
	if err := configs.LoadTOML(path, &config); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to parse config: %v", err),
			Suggestion: fmt.Sprintf("Check %s for syntax errors", path),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Tool configuration valid"}
}

// checkSettingsFile checks that the settings file parses and validates.
func checkSettingsFile(ws *Workspace, report *settings.Report) CheckResult {
	const name = "Settings file"
	path := ws.Store.Path()

	switch {
	case !report.Exists:
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "Settings file not created yet",
			Suggestion: "Run 'envkeep settings show' to create it with defaults",
		}
	case report.ParseErr != nil:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Settings file is unreadable: %v", report.ParseErr),
			Suggestion: fmt.Sprintf("Fix or remove %s; defaults are used until then", path),
		}
	case report.ValidationErr != nil:
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Settings file is invalid: %v", report.ValidationErr),
			Suggestion: "Correct the field with 'envkeep settings set <field> <value>'",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Settings file valid"}
}

// checkSecretsDecrypt checks that every encrypted secret opens.
func checkSecretsDecrypt(report *settings.Report) CheckResult {
	const name = "Stored secrets"

	var failed []string
	for _, s := range report.Secrets {
		if s.Err != nil {
			failed = append(failed, s.Path)
		}
	}

	if len(failed) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Cannot decrypt: %s", strings.Join(failed, ", ")),
			Suggestion: "Re-enter each secret with 'envkeep settings secret set <slot>'",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("%d stored secrets readable", len(report.Secrets)),
	}
}

// checkSecureStorage checks whether new secrets will be encrypted.
func checkSecureStorage(ws *Workspace) CheckResult {
	const name = "Secure storage"

	if ws.Config.TestMode {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "Test mode is on: secrets are stored as plaintext",
			Suggestion: "Unset test_mode in config.toml and ENVKEEP_TEST_MODE",
		}
	}
	if !ws.Store.Codec().Available() {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "System keychain unavailable: secrets are stored as plaintext",
			Suggestion: "Unlock or install a keychain service (Secret Service on Linux)",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "System keychain available"}
}

// checkPlaintextSecrets warns about secrets stored without encryption while
// secure storage could seal them.
func checkPlaintextSecrets(ws *Workspace, report *settings.Report) CheckResult {
	const name = "Plaintext secrets"

	var plain []string
	for _, s := range report.Secrets {
		if s.EncryptionType != secrets.EncryptionSecureStorage {
			plain = append(plain, s.Path)
		}
	}

	if len(plain) > 0 && ws.Store.Codec().Available() {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Stored without encryption: %s", strings.Join(plain, ", ")),
			Suggestion: "Run 'envkeep settings secret reseal' to encrypt them",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "No plaintext secrets to upgrade"}
}

// checkFilePermissions checks that a file holding secrets is private.
func checkFilePermissions(name, path string) CheckResult {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return CheckResult{Name: name, Status: CheckPass, Message: "File not present (skipping permissions check)"}
	}
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to stat %s: %v", path, err),
			Suggestion: "Check that the file is accessible",
		}
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s is readable by other users (%04o)", filepath.Base(path), mode),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s' to fix permissions", path),
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("%s is private (%04o)", filepath.Base(path), mode),
	}
}

// checkAppsDir checks that the apps directory exists.
func checkAppsDir(dir string) CheckResult {
	const name = "Apps directory"

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Apps directory %s not found", dir),
			Suggestion: "Set apps_dir in config.toml or ENVKEEP_APPS_DIR",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("Apps directory %s", dir)}
}

// checkGitignore checks that the app's .gitignore covers its env file.
func checkGitignore(appDir, envFileName string) CheckResult {
	const name = "Gitignore configuration"
	gitignorePath := filepath.Join(appDir, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No .gitignore file found",
			Suggestion: fmt.Sprintf("Create a .gitignore file containing %s", envFileName),
		}
	}
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to read .gitignore: %v", err),
			Suggestion: "Check that the .gitignore file is accessible",
		}
	}

	if !gitignoreMatches(string(content), envFileName) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s is not ignored by .gitignore", envFileName),
			Suggestion: fmt.Sprintf("Add %s to .gitignore", envFileName),
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("%s is ignored by .gitignore", envFileName),
	}
}

// gitignoreMatches applies the patterns in content to a file at the
// repository root. Later patterns win, and ! negates.
func gitignoreMatches(content, fileName string) bool {
	ignored := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		negate := strings.HasPrefix(line, "!")
		pattern := strings.TrimPrefix(strings.TrimPrefix(line, "!"), "/")
		if strings.HasSuffix(pattern, "/") {
			continue
		}

		matched, err := doublestar.Match(pattern, fileName)
		if err != nil {
			continue
		}
		if !matched && !strings.Contains(pattern, "/") {
			matched, _ = doublestar.Match("**/"+pattern, fileName)
		}
		if matched {
			ignored = !negate
		}
	}
	return ignored
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
