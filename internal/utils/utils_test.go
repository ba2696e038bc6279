package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

func TestIsValidAppName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Simple", "my-app", true},
		{"Underscore", "my_app", true},
		{"Dots", "app.v2", true},
		{"Numbers", "123app", true},
		{"Empty", "", false},
		{"Dot", ".", false},
		{"Parent", "..", false},
		{"Traversal", "a..b", false},
		{"Slash", "a/b", false},
		{"LeadingDash", "-app", false},
		{"Space", "my app", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidAppName(tc.input); got != tc.want {
				t.Errorf("IsValidAppName(%q) = %v, expected %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestResolveAppDir(t *testing.T) {
	appsDir := t.TempDir()
	appDir := filepath.Join(appsDir, "my-app")
	if err := os.Mkdir(appDir, 0755); err != nil {
		t.Fatalf("Failed to create app dir: %v", err)
	}
	notDir := filepath.Join(appsDir, "file")
	if err := os.WriteFile(notDir, nil, 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	t.Run("ByName", func(t *testing.T) {
		got, err := ResolveAppDir(appsDir, "my-app", "")
		if err != nil {
			t.Fatalf("ResolveAppDir failed: %v", err)
		}
		if got != appDir {
			t.Errorf("Expected %s, got %s", appDir, got)
		}
	})

	t.Run("DirWins", func(t *testing.T) {
		other := t.TempDir()
		got, err := ResolveAppDir(appsDir, "my-app", other)
		if err != nil {
			t.Fatalf("ResolveAppDir failed: %v", err)
		}
		if got != other {
			t.Errorf("Expected %s, got %s", other, got)
		}
	})

	t.Run("DefaultsToCwd", func(t *testing.T) {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Getwd failed: %v", err)
		}
		got, err := ResolveAppDir(appsDir, "", "")
		if err != nil {
			t.Fatalf("ResolveAppDir failed: %v", err)
		}
		if got != cwd {
			t.Errorf("Expected %s, got %s", cwd, got)
		}
	})

	t.Run("MissingApp", func(t *testing.T) {
		_, err := ResolveAppDir(appsDir, "missing", "")
		if !errors.Is(err, kerrors.ErrAppNotFound) {
			t.Errorf("Expected ErrAppNotFound, got %v", err)
		}
	})

	t.Run("NotADirectory", func(t *testing.T) {
		_, err := ResolveAppDir(appsDir, "", notDir)
		if !errors.Is(err, kerrors.ErrAppNotFound) {
			t.Errorf("Expected ErrAppNotFound, got %v", err)
		}
	})

	t.Run("InvalidName", func(t *testing.T) {
		if _, err := ResolveAppDir(appsDir, "../etc", ""); err == nil {
			t.Error("Expected error for traversal name")
		}
	})
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatPaths([]string{"a/.env", "b/.env.local"})
	want := "\n    - a/.env\n    - b/.env.local\n"
	if got != want {
		t.Errorf("FormatPaths() = %q, want %q", got, want)
	}
}

func TestReadAll(t *testing.T) {
	data, err := readAll(strings.NewReader("sk-123\n"))
	if err != nil {
		t.Fatalf("readAll failed: %v", err)
	}
	if string(data) != "sk-123\n" {
		t.Errorf("Unexpected data %q", data)
	}

	if _, err := readAll(strings.NewReader("")); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestTrimLineEnding(t *testing.T) {
	for input, want := range map[string]string{
		"value":        "value",
		"value\n":      "value",
		"value\r\n":    "value",
		"value\n\n":    "value\n",
		"  spaced  \n": "  spaced  ",
	} {
		if got := TrimLineEnding(input); got != want {
			t.Errorf("TrimLineEnding(%q) = %q, want %q", input, got, want)
		}
	}
}
