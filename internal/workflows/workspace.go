package workflows

import (
	"path/filepath"

	"github.com/PolarWolf314/envkeep/internal/audit"
	"github.com/PolarWolf314/envkeep/internal/configs"
	logger "github.com/PolarWolf314/envkeep/internal/logging"
	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
	"github.com/PolarWolf314/envkeep/internal/utils"
)

// Workspace is the resolved environment workflows operate in.
type Workspace struct {
	Config *configs.Config
	Store  *settings.Store
	Logger logger.Logger
}

// NewWorkspace builds a workspace whose settings secrets are sealed with a
// master key in the system keychain.
func NewWorkspace(config *configs.Config, log logger.Logger) *Workspace {
	backend := secrets.NewKeyringBackend(config.KeyringService)
	return NewWorkspaceWithBackend(config, backend, log)
}

// NewWorkspaceWithBackend builds a workspace over an explicit secure storage
// backend.
func NewWorkspaceWithBackend(config *configs.Config, backend secrets.Backend, log logger.Logger) *Workspace {
	codec := secrets.NewCodec(backend, config.TestMode)
	return &Workspace{
		Config: config,
		Store:  settings.NewStore(config.SettingsPath(), codec, log),
		Logger: log,
	}
}

// Target selects the app whose env file a workflow edits. Dir takes
// precedence over App; with neither, the current directory is used.
type Target struct {
	App string
	Dir string
}

// resolve returns the app directory and the path of its env file.
func (w *Workspace) resolve(target Target) (string, string, error) {
	appDir, err := utils.ResolveAppDir(w.Config.AppsDir, target.App, target.Dir)
	if err != nil {
		return "", "", err
	}
	return appDir, filepath.Join(appDir, w.Config.EnvFileName), nil
}

// record appends an audit entry for app. Failures are ignored.
func (w *Workspace) record(entry audit.Entry) {
	audit.Log(w.Config.AuditPath(), entry)
}
