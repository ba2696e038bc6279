package workflows

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envkeep/internal/audit"
	"github.com/PolarWolf314/envkeep/internal/configs"
	logger "github.com/PolarWolf314/envkeep/internal/logging"
)

// xorBackend is a reversible stand-in for the system keychain.
type xorBackend struct {
	available bool
	fail      bool
}

func (b *xorBackend) IsAvailable() bool { return b.available }

func (b *xorBackend) Encrypt(plaintext []byte) ([]byte, error) {
	return xor(plaintext), nil
}

func (b *xorBackend) Decrypt(ciphertext []byte) ([]byte, error) {
	if b.fail {
		return nil, errors.New("key mismatch")
	}
	return xor(ciphertext), nil
}

func xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, c := range data {
		out[i] = c ^ 0x5a
	}
	return out
}

type testWorkspace struct {
	*Workspace
	backend *xorBackend
	logs    *bytes.Buffer
	root    string
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()
	root := t.TempDir()
	config := &configs.Config{
		DataDir:        filepath.Join(root, "data"),
		AppsDir:        filepath.Join(root, "apps"),
		EnvFileName:    ".env.local",
		KeyringService: "envkeep-test",
	}
	if err := os.MkdirAll(config.AppsDir, 0755); err != nil {
		t.Fatalf("Failed to create apps dir: %v", err)
	}

	backend := &xorBackend{available: true}
	logs := &bytes.Buffer{}
	ws := NewWorkspaceWithBackend(config, backend, logger.Logger{Out: logs, Err: logs})
	return &testWorkspace{Workspace: ws, backend: backend, logs: logs, root: root}
}

// addApp creates an app directory with an optional env file.
func (tw *testWorkspace) addApp(t *testing.T, name, env string) string {
	t.Helper()
	dir := filepath.Join(tw.Config.AppsDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	if env != "" {
		if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte(env), 0600); err != nil {
			t.Fatalf("Failed to write env file: %v", err)
		}
	}
	return dir
}

func (tw *testWorkspace) readEnv(t *testing.T, app string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(tw.Config.AppsDir, app, ".env.local"))
	if err != nil {
		t.Fatalf("Failed to read env file: %v", err)
	}
	return string(data)
}

func (tw *testWorkspace) auditEntries(t *testing.T) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(tw.Config.AuditPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}
