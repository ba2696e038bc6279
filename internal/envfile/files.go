package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// DefaultFileName is the env file maintained in each app's root directory.
const DefaultFileName = ".env.local"

// Load reads and parses the env file at path. A missing file yields an empty
// list rather than an error.
func Load(path string) ([]EnvVar, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []EnvVar{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Save serializes vars to path, replacing any existing content.
func Save(path string, vars []EnvVar) error {
	if err := os.WriteFile(path, []byte(Serialize(vars)), 0600); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}
	return nil
}

// skippedDirs are never descended into when searching for env files.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// ResolveFiles takes user-provided paths/globs relative to root and returns
// matching env files. Directories are searched recursively. With no patterns,
// root itself is searched.
func ResolveFiles(patterns []string, root string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, root)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern string, root string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(root, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
	}

	if !IsEnvFile(absPattern) {
		return nil, fmt.Errorf("file is not a .env file: %s", pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if inSkippedDir(m) {
			continue
		}
		if IsEnvFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findFilesInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if IsEnvFile(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// IsEnvFile reports whether path names a dotenv file such as .env or
// .env.local.
func IsEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasPrefix(base, ".env.")
}

func inSkippedDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if skippedDirs[part] {
			return true
		}
	}
	return false
}
