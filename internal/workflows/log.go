package workflows

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/envkeep/internal/audit"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit keeps only the most recent entries. 0 keeps all.
	Limit int

	// Reverse lists the newest entry first.
	Reverse bool

	App string

	// Operations is a comma-separated list such as "env.set,env.unset".
	Operations string

	// Since and Until bound the entry date, inclusive, as YYYY-MM-DD.
	Since string
	Until string
}

// LogResult contains the filtered entries.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter counts every entry in the log.
	TotalEntriesBeforeFilter int
}

// dateLayout is the format of the Since and Until filters.
const dateLayout = "2006-01-02"

// Log reads the audit log and applies the filters in opts. Entries stay in
// the order they were written unless Reverse is set. Limit keeps the most
// recent entries in either order.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func Log(ctx context.Context, ws *Workspace, opts LogOptions) (*LogResult, error) {
	since, err := parseDateFlag("--since", opts.Since)
	if err != nil {
		return nil, err
	}
	until, err := parseDateFlag("--until", opts.Until)
	if err != nil {
		return nil, err
	}
	if !until.IsZero() {
		// Until covers the whole day.
		until = until.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	logPath := ws.Config.AuditPath()
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, logPath)
	}

	entries, err := audit.ReadEntries(logPath)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	ws.Logger.Debugf("Read %d audit entries from %s", len(entries), logPath)

	ops := operationSet(opts.Operations)
	var filtered []audit.Entry
	for _, e := range entries {
		if opts.App != "" && e.App != opts.App {
			continue
		}
		if ops != nil && !ops[strings.ToLower(e.Operation)] {
			continue
		}
		if !inRange(e, since, until) {
			continue
		}
		filtered = append(filtered, e)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(filtered)
	}

	return &LogResult{
		Entries:                  filtered,
		TotalEntriesBeforeFilter: len(entries),
	}, nil
}

func parseDateFlag(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, flag)
	}
	return t, nil
}

// operationSet parses a comma-separated operation filter. Empty means no
// filter and yields nil.
func operationSet(list string) map[string]bool {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, op := range strings.Split(list, ",") {
		if op = strings.TrimSpace(op); op != "" {
			set[strings.ToLower(op)] = true
		}
	}
	return set
}

// inRange reports whether e falls between since and until. Zero bounds are
// open. Entries with an unparseable timestamp only pass when no bound is set.
func inRange(e audit.Entry, since, until time.Time) bool {
	if since.IsZero() && until.IsZero() {
		return true
	}
	t, ok := parseTimestamp(e.Timestamp)
	if !ok {
		return false
	}
	if !since.IsZero() && t.Before(since) {
		return false
	}
	if !until.IsZero() && t.After(until) {
		return false
	}
	return true
}

// parseTimestamp accepts the audit format and plain RFC 3339.
func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range []string{audit.TimestampFormat, time.RFC3339} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a timestamp as YYYY-MM-DD.
func FormatDate(ts string) string {
	return formatTimestamp(ts, dateLayout)
}

// FormatDateTime renders a timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	return formatTimestamp(ts, "2006-01-02 15:04:05")
}

// formatTimestamp falls back to truncating ts when it does not parse.
func formatTimestamp(ts, layout string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format(layout)
	}
	if len(ts) > len(layout) {
		return ts[:len(layout)]
	}
	return ts
}

// FormatDetails formats the details for a log entry in verbose format.
// Values are never part of an entry, only key and field names.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "env.set", "env.unset":
		return joinLimited(e.Keys, 5)
	case "env.import":
		details := fmt.Sprintf("%s, %d keys", e.Mode, e.Count)
		if len(e.Files) > 0 {
			details += " from " + joinLimited(e.Files, 3)
		}
		return details
	case "env.export":
		return fmt.Sprintf("%d keys to %s", e.Count, e.OutputPath)
	case "settings.set", "secret.set", "secret.clear":
		return strings.Join(e.Fields, ", ")
	case "secret.reseal":
		return fmt.Sprintf("%d secrets", e.Count)
	default:
		return ""
	}
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	switch e.Operation {
	case "env.set", "env.unset", "env.export":
		return fmt.Sprintf("%d keys", e.Count)
	case "env.import":
		return fmt.Sprintf("%s %d keys", e.Mode, e.Count)
	default:
		return FormatDetails(e)
	}
}

func joinLimited(items []string, limit int) string {
	if len(items) > limit {
		return fmt.Sprintf("%s and %d more", strings.Join(items[:limit], ", "), len(items)-limit)
	}
	return strings.Join(items, ", ")
}
