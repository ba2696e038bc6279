// Package workflows provides high-level orchestration for envkeep commands.
//
// Workflows coordinate the envfile, settings, secrets and audit packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving the target app and its env file
//   - Reading and writing the settings document
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - ListEnv, GetEnv, SetEnv, UnsetEnv: edit one app's env file
//   - ImportEnv, ExportEnv: move variables between env files and formats
//   - ScanEnv: find env files under the apps directory
//   - ShowSettings, GetSetting, SetSetting: inspect and patch user settings
//   - SetSecret, ClearSecret: manage the secrets stored in user settings
//   - Doctor: diagnose configuration, settings and secure storage
//   - Log: read the audit trail
//
// # Workspace
//
// Every workflow takes a *Workspace holding the resolved tool config and
// the settings store. Tests build one over a temporary directory with a
// fake secure storage backend.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	_, err := workflows.GetEnv(ctx, ws, opts)
//	if errors.Is(err, kerrors.ErrEnvVarNotFound) {
//	    // Show user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
