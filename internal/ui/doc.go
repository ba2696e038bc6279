// Package ui formats CLI output by meaning rather than by color.
//
// Each formatter colors its text when the terminal supports it. When NO_COLOR
// is set or stdout is not a color terminal, Code, Highlight, Muted and Secret
// fall back to backticks, single quotes, parentheses and brackets; the rest
// print their text unchanged.
//
//	ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(path)
//	ui.Key.Sprint("DATABASE_URL") + "=" + ui.Secret.Sprint("****abcd")
//	"Run " + ui.Code.Sprint("envkeep settings doctor")
package ui
