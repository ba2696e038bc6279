package workflows

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envkeep/internal/envfile"
)

// ScanEnvOptions configures the scan workflow.
type ScanEnvOptions struct {
	// Root defaults to the configured apps directory.
	Root string

	// Patterns are paths or doublestar globs relative to Root.
	Patterns []string
}

// ScannedFile is one env file found by ScanEnv.
type ScannedFile struct {
	Path string   `json:"path"`
	App  string   `json:"app"`
	Keys []string `json:"keys"`
}

// ScanEnvResult contains every env file found.
type ScanEnvResult struct {
	Root  string        `json:"root"`
	Files []ScannedFile `json:"files"`
}

// ScanEnv finds env files under the apps directory and lists their keys.
// Values are never returned. App is the first path segment below Root.
//
// Returns ErrNoFilesFound if nothing matched.
func ScanEnv(ctx context.Context, ws *Workspace, opts ScanEnvOptions) (*ScanEnvResult, error) {
	root := opts.Root
	if root == "" {
		root = ws.Config.AppsDir
	}

	paths, err := envfile.ResolveFiles(opts.Patterns, root)
	if err != nil {
		return nil, err
	}

	result := &ScanEnvResult{Root: root}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vars, err := envfile.Load(path)
		if err != nil {
			ws.Logger.Warnf("Skipping %s: %v", path, err)
			continue
		}

		result.Files = append(result.Files, ScannedFile{
			Path: path,
			App:  appOf(root, path),
			Keys: envfile.Keys(dedupe(vars)),
		})
	}
	return result, nil
}

func appOf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	first, _, found := strings.Cut(filepath.ToSlash(rel), "/")
	if !found {
		return ""
	}
	return first
}
