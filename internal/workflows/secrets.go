package workflows

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PolarWolf314/envkeep/internal/audit"
	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	"github.com/PolarWolf314/envkeep/internal/secrets"
	"github.com/PolarWolf314/envkeep/internal/settings"
)

// Secret slots name the places a secret can live in the settings document.
const (
	SlotGithub          = "github"
	SlotVercel          = "vercel"
	SlotSupabaseAccess  = "supabase.access"
	SlotSupabaseRefresh = "supabase.refresh"
	SlotNeonAccess      = "neon.access"
	SlotNeonRefresh     = "neon.refresh"

	// SlotProviderPrefix is followed by a provider id, as in provider:openai.
	SlotProviderPrefix = "provider:"
)

// SecretSlots returns the fixed slot names, sorted.
func SecretSlots() []string {
	slots := []string{
		SlotGithub, SlotVercel,
		SlotSupabaseAccess, SlotSupabaseRefresh,
		SlotNeonAccess, SlotNeonRefresh,
	}
	sort.Strings(slots)
	return slots
}

// SetSecretOptions configures the set-secret workflow.
type SetSecretOptions struct {
	Slot  string
	Value string
}

// SetSecretResult contains the outcome of storing a secret.
type SetSecretResult struct {
	Slot string

	// Encrypted is false when secure storage was unavailable and the value
	// was stored as plaintext.
	Encrypted bool
}

// SetSecret stores value in the named slot. Sibling fields of nested
// objects, such as the other token of a Supabase pair, are preserved.
//
// Returns ErrUnknownSecretSlot for an unrecognised slot. If the current
// settings cannot be loaded the error is returned and the file is not written.
func SetSecret(ctx context.Context, ws *Workspace, opts SetSecretOptions) (*SetSecretResult, error) {
	if opts.Value == "" {
		return nil, fmt.Errorf("secret value for %s is empty", opts.Slot)
	}

	current, err := ws.Store.Load()
	if err != nil {
		return nil, err
	}
	patch, err := secretPatch(current, opts.Slot, secrets.NewSecret(opts.Value))
	if err != nil {
		return nil, err
	}
	if err := ws.Store.Save(patch); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("secret.set")
	entry.Fields = []string{opts.Slot}
	ws.record(entry)

	return &SetSecretResult{
		Slot:      opts.Slot,
		Encrypted: ws.Store.Codec().Available(),
	}, nil
}

// ClearSecretOptions configures the clear-secret workflow.
type ClearSecretOptions struct {
	Slot string
}

// ClearSecret removes the secret in the named slot. A token pair left with
// neither token is removed as well.
//
// Returns ErrUnknownSecretSlot for an unrecognised slot.
func ClearSecret(ctx context.Context, ws *Workspace, opts ClearSecretOptions) error {
	current, err := ws.Store.Load()
	if err != nil {
		return err
	}
	patch, err := secretPatch(current, opts.Slot, nil)
	if err != nil {
		return err
	}
	if err := ws.Store.Save(patch); err != nil {
		return err
	}

	entry := audit.NewEntry("secret.clear")
	entry.Fields = []string{opts.Slot}
	ws.record(entry)
	return nil
}

// secretPatch builds the shallow patch that puts secret (or nil) into slot.
// Nested objects are copied from current so the write does not drop their
// other fields.
func secretPatch(current *settings.UserSettings, slot string, secret *secrets.Secret) (settings.Patch, error) {
	switch slot {
	case SlotGithub:
		return settings.Patch{"githubAccessToken": optional(secret)}, nil
	case SlotVercel:
		return settings.Patch{"vercelAccessToken": optional(secret)}, nil
	case SlotSupabaseAccess, SlotSupabaseRefresh:
		tokens := withToken(current.Supabase, slot == SlotSupabaseAccess, secret)
		return settings.Patch{"supabase": optional(tokens)}, nil
	case SlotNeonAccess, SlotNeonRefresh:
		tokens := withToken(current.Neon, slot == SlotNeonAccess, secret)
		return settings.Patch{"neon": optional(tokens)}, nil
	}

	id, ok := strings.CutPrefix(slot, SlotProviderPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %q (expected one of %s or %s<id>)",
			kerrors.ErrUnknownSecretSlot, slot, strings.Join(SecretSlots(), ", "), SlotProviderPrefix)
	}

	providers := make(map[string]settings.ProviderSetting, len(current.ProviderSettings)+1)
	for k, v := range current.ProviderSettings {
		providers[k] = v
	}
	entry := providers[id]
	entry.APIKey = secret
	if entry == (settings.ProviderSetting{}) {
		delete(providers, id)
	} else {
		providers[id] = entry
	}
	return settings.Patch{"providerSettings": providers}, nil
}

// withToken returns a copy of tokens with the access or refresh token
// replaced. It returns nil when the copy would be empty.
func withToken(tokens *settings.OAuthTokens, access bool, secret *secrets.Secret) *settings.OAuthTokens {
	var next settings.OAuthTokens
	if tokens != nil {
		next = *tokens
	}
	if access {
		next.AccessToken = secret
	} else {
		next.RefreshToken = secret
	}
	if next.AccessToken == nil && next.RefreshToken == nil {
		return nil
	}
	return &next
}

// optional converts a typed nil pointer into an untyped nil so the patch
// deletes the key.
func optional[T any](v *T) any {
	if v == nil {
		return nil
	}
	return v
}

// ResealSecretsResult contains the outcome of a reseal.
type ResealSecretsResult struct {
	Count     int
	Encrypted bool
}

// ResealSecrets rewrites the settings file so every stored secret is
// encrypted with the current backend. Plaintext secrets left from a time
// without secure storage are sealed.
func ResealSecrets(ctx context.Context, ws *Workspace) (*ResealSecretsResult, error) {
	current, err := ws.Store.Load()
	if err != nil {
		return nil, err
	}
	if err := ws.Store.Save(settings.Patch{}); err != nil {
		return nil, err
	}

	var fields []string
	for _, f := range current.SecretFields() {
		fields = append(fields, f.Path)
	}

	entry := audit.NewEntry("secret.reseal")
	entry.Fields = fields
	entry.Count = len(fields)
	ws.record(entry)

	return &ResealSecretsResult{
		Count:     len(fields),
		Encrypted: ws.Store.Codec().Available(),
	}, nil
}
