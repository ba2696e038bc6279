// Package envfile reads and writes .env style files for managed apps.
//
// The format is one KEY=VALUE per line. Parsing is forgiving: blank lines,
// full-line comments and lines without a key are skipped silently rather than
// reported.
//
// # Quoting
//
// Values may be wrapped in double or single quotes:
//
//	MSG="He said \"hi\"" # trailing comment is dropped
//	RAW='kept $verbatim'
//	URL=postgres://x#not-a-comment
//
// Double-quoted values unescape \" and stop at the first quote that is not
// preceded by a backslash. Single-quoted values stop at the next single quote
// and are taken verbatim. Unquoted values are taken as-is, including any #
// characters, so inline comments are only stripped after a closing quote.
//
// Serialize quotes a value with double quotes whenever it contains
// whitespace or one of # " ' = & ?, escaping embedded double quotes. Parsing
// the output of Serialize yields the original values.
//
// # Sensitive Data
//
// Values are secrets. Nothing in this package logs them.
package envfile
