package envfile

import (
	"strings"
	"unicode"
)

// EnvVar is a single environment variable entry.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Parse reads .env content into an ordered list of variables. Entries keep
// file order; malformed lines are dropped.
func Parse(content string) []EnvVar {
	var vars []EnvVar

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		eq := strings.Index(trimmed, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])

		vars = append(vars, EnvVar{Key: key, Value: unquote(value)})
	}

	return vars
}

// unquote strips a leading quoted section from value. Anything after the
// closing quote is discarded. Values without a closing quote are returned
// unchanged.
func unquote(value string) string {
	switch {
	case strings.HasPrefix(value, `"`):
		for i := 1; i < len(value); i++ {
			if value[i] == '"' && value[i-1] != '\\' {
				return strings.ReplaceAll(value[1:i], `\"`, `"`)
			}
		}
	case strings.HasPrefix(value, "'"):
		if end := strings.Index(value[1:], "'"); end != -1 {
			return value[1 : end+1]
		}
	}
	return value
}

// Serialize renders variables as .env content, one per line, without a
// trailing newline.
func Serialize(vars []EnvVar) string {
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, v.Key+"="+quote(v.Value))
	}
	return strings.Join(lines, "\n")
}

func quote(value string) string {
	if !needsQuotes(value) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

func needsQuotes(value string) bool {
	return strings.ContainsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`#"'=&?`, r)
	})
}
