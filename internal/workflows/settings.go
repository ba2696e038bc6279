package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/envkeep/internal/audit"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
)

// ShowSettingsOptions configures the show workflow.
type ShowSettingsOptions struct {
	// Reveal returns secrets in plaintext instead of masked.
	Reveal bool
}

// ShowSettingsResult contains the effective settings.
type ShowSettingsResult struct {
	Path     string
	Settings *settings.UserSettings

	// Encrypted reports whether new secrets will be sealed by secure storage.
	Encrypted bool
}

// ShowSettings returns the settings as the application would see them:
// decrypted, merged with defaults, or the defaults alone when the file is
// unusable. Secrets are masked unless opts.Reveal is set.
func ShowSettings(ctx context.Context, ws *Workspace, opts ShowSettingsOptions) (*ShowSettingsResult, error) {
	current := ws.Store.Read()
	if !opts.Reveal {
		maskSecrets(current)
	}

	return &ShowSettingsResult{
		Path:      ws.Store.Path(),
		Settings:  current,
		Encrypted: ws.Store.Codec().Available(),
	}, nil
}

func maskSecrets(s *settings.UserSettings) {
	for _, f := range s.SecretFields() {
		f.Secret.Value = secrets.Masked(f.Secret.Value)
	}
	for id, p := range s.ProviderSettings {
		if p.ServiceAccountKey != nil {
			masked := *p.ServiceAccountKey
			masked.Value = secrets.Masked(masked.Value)
			p.ServiceAccountKey = &masked
			s.ProviderSettings[id] = p
		}
	}
}

// GetSettingOptions configures the get workflow.
type GetSettingOptions struct {
	Field  string
	Reveal bool
}

// GetSetting returns one top-level field as JSON. A field that is not set
// yields "null".
//
// Returns ErrUnknownSetting if field is not part of the document.
func GetSetting(ctx context.Context, ws *Workspace, opts GetSettingOptions) (json.RawMessage, error) {
	if !settings.IsField(opts.Field) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrUnknownSetting, opts.Field)
	}

	shown, err := ShowSettings(ctx, ws, ShowSettingsOptions{Reveal: opts.Reveal})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(shown.Settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	if value, ok := doc[opts.Field]; ok {
		return value, nil
	}
	return json.RawMessage("null"), nil
}

// SetSettingOptions configures the set workflow.
type SetSettingOptions struct {
	Field string

	// Value is parsed as JSON. Anything that is not valid JSON is stored as
	// a string. The JSON literal null removes the field.
	Value string
}

// SetSettingResult contains the outcome of a set operation.
type SetSettingResult struct {
	Field   string
	Removed bool
}

// SetSetting replaces one top-level field of the settings document. Nested
// objects are replaced wholesale.
//
// Returns ErrUnknownSetting if field is not part of the document.
// Returns ErrInvalidSettings if the result does not validate, and the load
// error if the current file cannot be loaded. The file is left unchanged in
// both cases.
func SetSetting(ctx context.Context, ws *Workspace, opts SetSettingOptions) (*SetSettingResult, error) {
	if !settings.IsField(opts.Field) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrUnknownSetting, opts.Field)
	}

	value := parseSettingValue(opts.Value)
	if err := ws.Store.Save(settings.Patch{opts.Field: value}); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("settings.set")
	entry.Fields = []string{opts.Field}
	ws.record(entry)

	return &SetSettingResult{Field: opts.Field, Removed: value == nil}, nil
}

// parseSettingValue turns command-line text into a patch value. A nil
// return removes the field.
func parseSettingValue(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "null" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return text
}
