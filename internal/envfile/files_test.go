package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	vars, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if vars == nil || len(vars) != 0 {
		t.Errorf("Expected empty non-nil list, got: %#v", vars)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	vars := []EnvVar{{"API_KEY", "abc123"}, {"MSG", "Hello World"}}

	if err := Save(path, vars); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(data) != "API_KEY=abc123\nMSG=\"Hello World\"" {
		t.Errorf("Unexpected file content: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %04o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, vars) {
		t.Errorf("Load() = %v, want %v", loaded, vars)
	}
}

func TestIsEnvFile(t *testing.T) {
	tests := map[string]bool{
		".env":             true,
		".env.local":       true,
		"/x/y/.env.prod":   true,
		".envrc":           false,
		"env":              false,
		"config.env":       false,
		"/x/.env.local/ok": false,
	}
	for path, want := range tests {
		if got := IsEnvFile(path); got != want {
			t.Errorf("IsEnvFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestResolveFiles_DefaultsToRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env.local"), "A=1")
	writeTestFile(t, filepath.Join(tmpDir, "web", ".env"), "B=2")
	writeTestFile(t, filepath.Join(tmpDir, "README.md"), "docs")

	files, err := ResolveFiles(nil, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got: %v", files)
	}
}

func TestResolveFiles_SkipsDependencyDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env.local"), "A=1")
	writeTestFile(t, filepath.Join(tmpDir, "node_modules", "pkg", ".env"), "B=2")
	writeTestFile(t, filepath.Join(tmpDir, ".git", ".env"), "C=3")

	files, err := ResolveFiles([]string{"."}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(tmpDir, ".env.local") {
		t.Errorf("Expected only root .env.local, got: %v", files)
	}

	globbed, err := ResolveFiles([]string{"**/.env*"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(globbed) != 1 {
		t.Errorf("Expected glob to skip dependency dirs, got: %v", globbed)
	}
}

func TestResolveFiles_GlobPattern(t *testing.T) {
	tmpDir := t.TempDir()
	for _, app := range []string{"todo", "blog", "shop"} {
		writeTestFile(t, filepath.Join(tmpDir, app, ".env.local"), "A=1")
	}
	writeTestFile(t, filepath.Join(tmpDir, "blog", "notes.txt"), "x")

	files, err := ResolveFiles([]string{"*/.env.local"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	sort.Strings(files)
	want := []string{
		filepath.Join(tmpDir, "blog", ".env.local"),
		filepath.Join(tmpDir, "shop", ".env.local"),
		filepath.Join(tmpDir, "todo", ".env.local"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ResolveFiles() = %v, want %v", files, want)
	}
}

func TestResolveFiles_Deduplicates(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "A=1")

	files, err := ResolveFiles([]string{".env", ".", "**/.env"}, tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got: %v", files)
	}
}

func TestResolveFiles_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "config.json"), "{}")

	if _, err := ResolveFiles([]string{".env.missing"}, tmpDir); !errors.Is(err, kerrors.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got: %v", err)
	}

	if _, err := ResolveFiles([]string{"config.json"}, tmpDir); err == nil {
		t.Errorf("Expected error for non-env file")
	}

	if _, err := ResolveFiles([]string{"*.json"}, tmpDir); !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got: %v", err)
	}
}
