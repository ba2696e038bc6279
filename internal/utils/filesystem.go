package utils

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// ResolveAppDir returns the directory whose env file a command operates on.
// An explicit dir wins, then an app name under appsDir, then the current
// working directory. The result must be an existing directory.
func ResolveAppDir(appsDir, app, dir string) (string, error) {
	var target string
	switch {
	case dir != "":
		target = dir
	case app != "":
		if !IsValidAppName(app) {
			return "", fmt.Errorf("invalid app name %q", app)
		}
		target = filepath.Join(appsDir, app)
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		target = cwd
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrAppNotFound, abs)
	}
	if err != nil {
		return "", fmt.Errorf("error checking app directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", kerrors.ErrAppNotFound, abs)
	}
	return abs, nil
}
