package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/envkeep/internal/ui"
)

var appNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// IsValidAppName reports whether name can be joined to the apps directory
// without escaping it.
func IsValidAppName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "..") {
		return false
	}
	return appNamePattern.MatchString(name)
}
