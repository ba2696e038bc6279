package envfile

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// ValidKey reports an error if key cannot be written to and read back from
// an env file unchanged.
func ValidKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: key is empty", kerrors.ErrInvalidEnvKey)
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: %q has surrounding whitespace", kerrors.ErrInvalidEnvKey, key)
	case strings.HasPrefix(key, "#"):
		return fmt.Errorf("%w: %q starts with #", kerrors.ErrInvalidEnvKey, key)
	case strings.ContainsAny(key, "=\n\r"):
		return fmt.Errorf("%w: %q contains '=' or a line break", kerrors.ErrInvalidEnvKey, key)
	}
	return nil
}

// ValidValue reports an error if value contains a line break. The format
// has no escape for line breaks, so such a value would be split into
// separate entries when the file is read back.
func ValidValue(key, value string) error {
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: value of %s contains a line break", kerrors.ErrInvalidEnvValue, key)
	}
	return nil
}

// Get returns the value of the last entry named key.
func Get(vars []EnvVar, key string) (string, bool) {
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].Key == key {
			return vars[i].Value, true
		}
	}
	return "", false
}

// Set replaces every entry named key in place, or appends a new entry when
// key is not present. The input slice is not modified.
func Set(vars []EnvVar, key, value string) []EnvVar {
	out := make([]EnvVar, len(vars), len(vars)+1)
	copy(out, vars)

	found := false
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			found = true
		}
	}
	if !found {
		out = append(out, EnvVar{Key: key, Value: value})
	}
	return out
}

// Unset removes all entries for the given keys and reports how many entries
// were dropped.
func Unset(vars []EnvVar, keys ...string) ([]EnvVar, int) {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	out := make([]EnvVar, 0, len(vars))
	for _, v := range vars {
		if drop[v.Key] {
			continue
		}
		out = append(out, v)
	}
	return out, len(vars) - len(out)
}

// MergeResult describes how Merge treated the incoming entries.
type MergeResult struct {
	Vars    []EnvVar
	Added   []string
	Updated []string
	Skipped []string
}

// Merge folds incoming into base. New keys are appended in incoming order.
// Keys already in base keep their value unless overwrite is set.
func Merge(base, incoming []EnvVar, overwrite bool) MergeResult {
	result := MergeResult{Vars: make([]EnvVar, len(base))}
	copy(result.Vars, base)

	for _, v := range incoming {
		current, exists := Get(result.Vars, v.Key)
		switch {
		case !exists:
			result.Vars = append(result.Vars, v)
			result.Added = append(result.Added, v.Key)
		case !overwrite:
			result.Skipped = append(result.Skipped, v.Key)
		case current == v.Value:
			// Unchanged.
		default:
			result.Vars = Set(result.Vars, v.Key, v.Value)
			result.Updated = append(result.Updated, v.Key)
		}
	}

	return result
}

// Keys returns the keys of vars in order.
func Keys(vars []EnvVar) []string {
	keys := make([]string, 0, len(vars))
	for _, v := range vars {
		keys = append(keys, v.Key)
	}
	return keys
}
