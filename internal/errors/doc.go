// Package errors provides typed error values for the envkeep application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Settings errors: the settings document is unreadable or invalid
//     (ErrSettingsCorrupt, ErrInvalidSettings)
//   - Crypto errors: secure storage failures (ErrSecureStorageUnavailable,
//     ErrEncryptFailed, ErrDecryptFailed)
//   - Env file errors: malformed keys or missing variables (ErrInvalidEnvKey,
//     ErrEnvVarNotFound)
//   - App errors: the target app directory or its env file cannot be found
//     (ErrAppNotFound, ErrEnvFileNotFound)
//   - Input errors: malformed command arguments (ErrInvalidFormat,
//     ErrInvalidDateFormat)
//
// # Usage
//
// Return errors from internal packages, wrapping them with context:
//
//	return fmt.Errorf("decrypting %s: %w", field, errors.ErrDecryptFailed)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrAppNotFound) {
//	    // Show user-friendly message
//	}
package errors
