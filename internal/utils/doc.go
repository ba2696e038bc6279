// Package utils provides shared helpers for envkeep commands.
//
// # Filesystem Utilities
//
//   - ResolveAppDir: picks the app directory from --dir, --app or the cwd
//   - FormatPaths: formats file paths for human-readable output
//
// # String Utilities
//
//   - IsValidAppName: checks that an app name is a single safe path segment
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data, such as a secret, from standard input
//
// # Terminal Utilities
//
//   - ReadSecret: prompts for a secret without echoing it
//   - IsTerminal: checks whether stdin is a terminal
package utils
