// Package settings persists the user settings document.
//
// The document is a single JSON object stored as user-settings.json in the
// user data directory. The Store is the only writer of that file.
//
// # Reading
//
// Load bootstraps a missing file with the defaults, otherwise it shallow-merges
// the stored object onto the defaults, decrypts every tagged secret and
// validates the result. Unknown fields are dropped. Read wraps Load and
// answers the defaults on any failure, so a corrupt file, an undecryptable
// secret or an invalid field never blocks the caller. The file is not
// rewritten in that case.
//
// # Writing
//
// Save reads the current document, replaces whole top-level keys with the
// patch (a nil value removes the key), encrypts every secret and writes the
// result. Nested objects are not merged: callers updating one provider must
// pass the complete providerSettings map. Write wraps Save and only logs
// failures.
//
// # Secret Fields
//
// The following locations hold secrets and pass through the codec:
//
//	githubAccessToken
//	vercelAccessToken
//	supabase.accessToken, supabase.refreshToken
//	neon.accessToken, neon.refreshToken
//	providerSettings.<id>.apiKey
package settings
