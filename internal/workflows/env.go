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

// ListEnvOptions configures the list workflow.
type ListEnvOptions struct {
	Target Target
}

// ListEnvResult contains the variables of one app.
type ListEnvResult struct {
	// AppDir is the resolved app directory.
	AppDir string

	// Path is the env file that was read.
	Path string

	// Exists is false when the app has no env file yet.
	Exists bool

	// Vars are the entries in file order.
	Vars []envfile.EnvVar
}

// ListEnv reads an app's env file. A missing file is not an error; the
// result has no variables.
//
// Returns ErrAppNotFound if the app directory does not exist.
func ListEnv(ctx context.Context, ws *Workspace, opts ListEnvOptions) (*ListEnvResult, error) {
	appDir, path, err := ws.resolve(opts.Target)
	if err != nil {
		return nil, err
	}

	vars, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	ws.Logger.Debugf("Read %d variables from %s", len(vars), path)

	return &ListEnvResult{
		AppDir: appDir,
		Path:   path,
		Exists: statErr == nil,
		Vars:   vars,
	}, nil
}

// GetEnvOptions configures the get workflow.
type GetEnvOptions struct {
	Target Target
	Key    string
}

// GetEnv returns the value of one variable.
//
// Returns ErrEnvVarNotFound if the key is not present.
func GetEnv(ctx context.Context, ws *Workspace, opts GetEnvOptions) (string, error) {
	listed, err := ListEnv(ctx, ws, ListEnvOptions{Target: opts.Target})
	if err != nil {
		return "", err
	}

	value, ok := envfile.Get(listed.Vars, opts.Key)
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrEnvVarNotFound, opts.Key)
	}
	return value, nil
}

// SetEnvOptions configures the set workflow.
type SetEnvOptions struct {
	Target Target

	// Vars are applied in order; a later entry for the same key wins.
	Vars []envfile.EnvVar
}

// SetEnvResult contains the outcome of a set operation.
type SetEnvResult struct {
	Path    string
	Added   []string
	Updated []string
}

// SetEnv adds or replaces variables in an app's env file, creating the file
// if needed. Existing entries keep their position.
//
// Returns ErrInvalidEnvKey if any key cannot be stored.
// Returns ErrInvalidEnvValue if any value contains a line break.
func SetEnv(ctx context.Context, ws *Workspace, opts SetEnvOptions) (*SetEnvResult, error) {
	for _, v := range opts.Vars {
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

	vars, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}

	merged := envfile.Merge(vars, dedupe(opts.Vars), true)
	if err := envfile.Save(path, merged.Vars); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("env.set")
	entry.App = filepath.Base(appDir)
	entry.Keys = append(append([]string{}, merged.Added...), merged.Updated...)
	entry.Count = len(entry.Keys)
	ws.record(entry)

	return &SetEnvResult{
		Path:    path,
		Added:   merged.Added,
		Updated: merged.Updated,
	}, nil
}

// UnsetEnvOptions configures the unset workflow.
type UnsetEnvOptions struct {
	Target Target
	Keys   []string
}

// UnsetEnvResult contains the outcome of an unset operation.
type UnsetEnvResult struct {
	Path    string
	Removed []string
	Missing []string
}

// UnsetEnv removes variables from an app's env file. Keys that are not
// present are reported in Missing. The file is left untouched when nothing
// was removed.
func UnsetEnv(ctx context.Context, ws *Workspace, opts UnsetEnvOptions) (*UnsetEnvResult, error) {
	appDir, path, err := ws.resolve(opts.Target)
	if err != nil {
		return nil, err
	}

	vars, err := envfile.Load(path)
	if err != nil {
		return nil, err
	}

	result := &UnsetEnvResult{Path: path}
	for _, key := range opts.Keys {
		if _, ok := envfile.Get(vars, key); ok {
			result.Removed = append(result.Removed, key)
		} else {
			result.Missing = append(result.Missing, key)
		}
	}

	if len(result.Removed) == 0 {
		return result, nil
	}

	remaining, _ := envfile.Unset(vars, result.Removed...)
	if err := envfile.Save(path, remaining); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("env.unset")
	entry.App = filepath.Base(appDir)
	entry.Keys = result.Removed
	entry.Count = len(result.Removed)
	ws.record(entry)

	return result, nil
}

// dedupe keeps the last value for each key, in first-seen order.
func dedupe(vars []envfile.EnvVar) []envfile.EnvVar {
	var out []envfile.EnvVar
	for _, v := range vars {
		out = envfile.Set(out, v.Key, v.Value)
	}
	return out
}
