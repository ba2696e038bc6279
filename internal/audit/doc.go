// Package audit records what envkeep changed and when.
//
// Every mutating operation (env set/unset/import, settings writes, secret
// changes) appends one entry to a JSON Lines file in the data directory:
//
//	<data_dir>/audit.jsonl
//
// Entries name the app, the env keys and the settings fields touched. They
// never contain values: the log is safe to share when debugging.
//
// # Usage
//
//	entry := audit.NewEntry("env.set")
//	entry.App = "my-app"
//	entry.Keys = []string{"DATABASE_URL"}
//	audit.Log(cfg.AuditPath(), entry)
//
// # Failure Handling
//
// Logging is best-effort. If the file cannot be written the operation still
// succeeds. ReadEntries skips malformed lines left by partial writes.
package audit
