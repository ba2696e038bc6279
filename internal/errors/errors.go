package errors

import "errors"

// Settings errors indicate the settings document could not be used as stored.
var (
	// ErrSettingsCorrupt indicates the settings file is not valid JSON or cannot be read.
	ErrSettingsCorrupt = errors.New("settings file is corrupt")

	// ErrInvalidSettings indicates the settings document failed schema validation.
	ErrInvalidSettings = errors.New("settings document is invalid")

	// ErrUnknownSetting indicates a setting name that is not part of the document.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrUnknownSecretSlot indicates a secret slot name that is not recognised.
	ErrUnknownSecretSlot = errors.New("unknown secret slot")
)

// Cryptographic errors indicate failures of the secure storage facility.
var (
	// ErrSecureStorageUnavailable indicates no platform secure storage could be reached.
	ErrSecureStorageUnavailable = errors.New("secure storage is unavailable")

	// ErrEncryptFailed indicates a secret could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt secret")

	// ErrDecryptFailed indicates a secret could not be decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt secret")
)

// Env file errors indicate issues with environment variable files.
var (
	// ErrInvalidEnvKey indicates a key that cannot round-trip through an env file.
	ErrInvalidEnvKey = errors.New("invalid environment variable key")

	// ErrInvalidEnvValue indicates a value that would span more than one line.
	ErrInvalidEnvValue = errors.New("invalid environment variable value")

	// ErrEnvVarNotFound indicates the requested variable is not present.
	ErrEnvVarNotFound = errors.New("environment variable not found")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")
)

// App errors indicate the target app project could not be resolved.
var (
	// ErrAppNotFound indicates the named app has no directory under the apps root.
	ErrAppNotFound = errors.New("app not found")

	// ErrEnvFileNotFound indicates the app has no env file yet.
	ErrEnvFileNotFound = errors.New("env file not found")
)

// Input errors indicate a malformed command argument.
var (
	// ErrInvalidFormat indicates an unsupported export or output format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidDateFormat indicates a date filter that is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
