package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envkeep/internal/audit"
	"github.com/PolarWolf314/envkeep/internal/envfile"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// ImportMode represents the import strategy.
type ImportMode int

const (
	// ImportModeMerge adds new keys and keeps existing values.
	ImportModeMerge ImportMode = iota
	// ImportModeReplace adds new keys and overwrites existing values.
	ImportModeReplace
)

// String returns the mode name recorded in the audit log.
func (m ImportMode) String() string {
	if m == ImportModeReplace {
		return "replace"
	}
	return "merge"
}

// ImportEnvOptions configures the import workflow.
type ImportEnvOptions struct {
	Target Target

	// Sources are env-format files read in order.
	Sources []string

	// Content is env-format text imported after Sources, typically stdin.
	Content string

	// Mode is the import strategy (merge or replace).
	Mode ImportMode

	// DryRun previews the import without making changes.
	DryRun bool
}

// ImportEnvResult contains the outcome of an import operation.
type ImportEnvResult struct {
	Path    string
	Added   []string
	Updated []string
	Skipped []string
	DryRun  bool
	Mode    ImportMode
}

// ImportEnv folds variables from other env files into an app's env file.
//
// Returns ErrFileNotFound if a source does not exist.
// Returns ErrNoFilesFound if no source or content was given.
// Returns ErrInvalidEnvKey or ErrInvalidEnvValue if an entry cannot be stored.
func ImportEnv(ctx context.Context, ws *Workspace, opts ImportEnvOptions) (*ImportEnvResult, error) {
	if len(opts.Sources) == 0 && opts.Content == "" {
		return nil, fmt.Errorf("%w: nothing to import", kerrors.ErrNoFilesFound)
	}

	var incoming []envfile.EnvVar
	for _, source := range opts.Sources {
		data, err := os.ReadFile(source)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, source)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		incoming = append(incoming, envfile.Parse(string(data))...)
	}
	incoming = append(incoming, envfile.Parse(opts.Content)...)

	for _, v := range incoming {
		if err := envfile.ValidKey(v.Key); err != nil {
			return nil, err
		}
		if err := envfile.ValidValue(v.Key, v.Value); err != nil {
			return nil, err
		}
	}

	appDir, path, err := ws.resolve(opts.Target)
	if err != nil {
		return nil, err
	}

	existing, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}

	merged := envfile.Merge(existing, dedupe(incoming), opts.Mode == ImportModeReplace)
	result := &ImportEnvResult{
		Path:    path,
		Added:   merged.Added,
		Updated: merged.Updated,
		Skipped: merged.Skipped,
		DryRun:  opts.DryRun,
		Mode:    opts.Mode,
	}

	if opts.DryRun {
		return result, nil
	}

	if err := envfile.Save(path, merged.Vars); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("env.import")
	entry.App = filepath.Base(appDir)
	entry.Files = opts.Sources
	entry.Mode = opts.Mode.String()
	entry.Keys = append(append([]string{}, merged.Added...), merged.Updated...)
	entry.Count = len(entry.Keys)
	ws.record(entry)

	return result, nil
}
