package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLog_CreatesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "data", "audit.jsonl")

	Log(logPath, Entry{Operation: "env.set", App: "my-app", Keys: []string{"API_URL"}})

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{Operation: "env.set"})
	Log(logPath, Entry{Operation: "env.unset"})
	Log(logPath, Entry{Operation: "settings.set"})

	if lines := readLines(t, logPath); len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{
		User:      "alice",
		Operation: "env.import",
		App:       "my-app",
		Keys:      []string{"A", "B"},
		Mode:      "merge",
	})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, logPath)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.User != "alice" {
		t.Errorf("Expected user alice, got %s", parsed.User)
	}
	if parsed.Operation != "env.import" {
		t.Errorf("Expected operation env.import, got %s", parsed.Operation)
	}
	if len(parsed.Keys) != 2 {
		t.Errorf("Expected 2 keys, got %d", len(parsed.Keys))
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{Operation: "env.set"})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, logPath)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if !strings.HasSuffix(parsed.Timestamp, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", parsed.Timestamp)
	}
	if !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", parsed.Timestamp)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{Operation: "settings.set", Fields: []string{"releaseChannel"}})

	line := readLines(t, logPath)[0]
	for _, field := range []string{`"keys"`, `"app"`, `"mode"`, `"output_path"`, `"count"`} {
		if strings.Contains(line, field) {
			t.Errorf("Empty %s field should be omitted: %s", field, line)
		}
	}
}

func TestLog_EmptyPath(t *testing.T) {
	// Should silently do nothing.
	Log("", Entry{Operation: "env.set"})
}

func TestLog_UnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	// A regular file where the directory should be: Log must not panic.
	Log(filepath.Join(blocker, "audit.jsonl"), Entry{Operation: "env.set"})
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry("secret.set")
	if entry.Operation != "secret.set" {
		t.Errorf("Expected operation secret.set, got %s", entry.Operation)
	}
	if entry.Timestamp != "" {
		t.Errorf("Timestamp should be set by Log, got %s", entry.Timestamp)
	}
}

func TestReadEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	entries, err := ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries on missing log failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected no entries, got %v", entries)
	}

	Log(logPath, Entry{Operation: "env.set", App: "a"})
	Log(logPath, Entry{Operation: "env.unset", App: "b"})

	entries, err = ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[1].App != "b" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"env.set"}
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"env.unset"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].User != "alice" {
		t.Errorf("Expected first user alice, got %s", entries[0].User)
	}
	if entries[1].User != "bob" {
		t.Errorf("Expected second user bob, got %s", entries[1].User)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","op":"env.set"}
this is not valid json

{"ts":"2024-01-15T10:35:00.456789Z","op":"env.unset"}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}
