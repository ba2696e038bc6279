package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. Without color it falls back to
// a textual prefix and suffix.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func plain(attr color.Attribute) Formatter {
	return Formatter{color: color.New(attr)}
}

func wrapped(attr color.Attribute, prefix, suffix string) Formatter {
	return Formatter{color: color.New(attr), prefix: prefix, suffix: suffix}
}

// Sprint formats like fmt.Sprint.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats like fmt.Sprintf.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a newline to s unless it already ends with one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor honours NO_COLOR (https://no-color.org/) as well as fatih/color's
// own terminal detection.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

// Formatters by content kind. Code is for runnable commands, Highlight for
// app names and setting values, Key for env keys and settings fields, and
// Secret for masked values.
var (
	Code      = wrapped(color.FgYellow, "`", "`")
	Path      = plain(color.FgYellow)
	Flag      = plain(color.FgYellow)
	Success   = plain(color.FgGreen)
	Error     = plain(color.FgRed)
	Warning   = plain(color.FgYellow)
	Info      = plain(color.FgCyan)
	Highlight = wrapped(color.FgCyan, "'", "'")
	Muted     = wrapped(color.FgHiBlack, "(", ")")
	Key       = plain(color.Bold)
	Secret    = wrapped(color.FgMagenta, "[", "]")
)

// Status returns the success or error indicator for ok.
func Status(ok bool) string {
	if ok {
		return Success.Sprint("✓")
	}
	return Error.Sprint("✗")
}
