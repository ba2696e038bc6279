// Package secrets encrypts individual secret strings for storage in the
// settings document.
//
// A Secret pairs a value with the method used to encode it at rest:
//
//	{"value": "<base64 ciphertext>", "encryptionType": "electron-safe-storage"}
//	{"value": "ghp_plain", "encryptionType": "plaintext"}
//
// The "electron-safe-storage" tag is kept for compatibility with settings
// files written by the desktop app. A secret without a tag has not been
// through the codec yet and is treated as plaintext.
//
// # Backends
//
// The Codec delegates to a Backend that wraps a platform secure storage
// facility. KeyringBackend keeps a random 256-bit master key in the system
// keychain (macOS Keychain, Secret Service, Windows Credential Manager) and
// seals values with NaCl secretbox, prepending the 24-byte nonce to the
// ciphertext. PlaintextBackend is never available.
//
// When the backend is unavailable, or the codec runs in test mode, Encrypt
// stores values as plaintext. Decrypt always honours the tag, so a secret
// encrypted on another machine fails to decrypt with ErrDecryptFailed.
package secrets
