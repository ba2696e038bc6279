// Package configs manages envkeep's own tool configuration.
//
// The tool config is a TOML file at:
//
//	<UserConfigDir>/envkeep/config.toml
//
// It records where envkeep keeps its data and where managed apps live:
//
//   - data_dir: holds user-settings.json and the audit log
//   - apps_dir: parent directory of app projects addressed with --app
//   - env_file_name: per-app env file, .env.local by default
//   - keyring_service: keychain service holding the settings master key
//   - test_mode: store secrets as plaintext and never touch the keychain
//
// # Environment Overrides
//
// Each value can be overridden for a single invocation:
//
//	ENVKEEP_DATA_DIR, ENVKEEP_APPS_DIR, ENVKEEP_KEYRING_SERVICE, ENVKEEP_TEST_MODE
//
// Overrides are applied by Resolve after the file is loaded and are never
// written back.
package configs
