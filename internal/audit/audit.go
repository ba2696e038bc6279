package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`
	User      string `json:"user,omitempty"` // Local account name.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	App        string   `json:"app,omitempty"`         // For env operations.
	Keys       []string `json:"keys,omitempty"`        // Env keys, never values.
	Fields     []string `json:"fields,omitempty"`      // Settings fields or secret slots.
	Files      []string `json:"files,omitempty"`       // For import/scan.
	Mode       string   `json:"mode,omitempty"`        // For import (merge/replace).
	OutputPath string   `json:"output_path,omitempty"` // For export.
	Count      int      `json:"count,omitempty"`       // Number of keys affected.
}

// NewEntry returns an entry for op with the local user filled in.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}
	if u, err := user.Current(); err == nil {
		entry.User = u.Username
	}
	return entry
}

// Log appends entry to the log at path. Failures are ignored so an
// operation never fails because its audit record could not be written.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the log at path. A missing log yields
// no entries and no error.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}
