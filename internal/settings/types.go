package settings

import (
	"reflect"
	"sort"
	"strings"

	"github.com/PolarWolf314/envkeep/internal/secrets"
)

// FileName is the settings file name inside the user data directory.
const FileName = "user-settings.json"

// UserSettings is the persisted settings document.
type UserSettings struct {
	SelectedModel                   LargeLanguageModel         `json:"selectedModel"`
	ProviderSettings                map[string]ProviderSetting `json:"providerSettings"`
	GithubUser                      *GithubUser                `json:"githubUser,omitempty"`
	GithubAccessToken               *secrets.Secret            `json:"githubAccessToken,omitempty"`
	VercelAccessToken               *secrets.Secret            `json:"vercelAccessToken,omitempty"`
	Supabase                        *OAuthTokens               `json:"supabase,omitempty"`
	Neon                            *OAuthTokens               `json:"neon,omitempty"`
	AutoApproveChanges              *bool                      `json:"autoApproveChanges,omitempty"`
	TelemetryConsent                string                     `json:"telemetryConsent,omitempty"`
	TelemetryUserID                 string                     `json:"telemetryUserId,omitempty"`
	HasRunBefore                    *bool                      `json:"hasRunBefore,omitempty"`
	Experiments                     *Experiments               `json:"experiments,omitempty"`
	LastShownReleaseNotesVersion    string                     `json:"lastShownReleaseNotesVersion,omitempty"`
	MaxChatTurnsInContext           *int                       `json:"maxChatTurnsInContext,omitempty"`
	ThinkingBudget                  string                     `json:"thinkingBudget,omitempty"`
	EnableProLazyEditsMode          *bool                      `json:"enableProLazyEditsMode,omitempty"`
	EnableProSmartFilesContextMode  *bool                      `json:"enableProSmartFilesContextMode,omitempty"`
	ProSmartContextOption           string                     `json:"proSmartContextOption,omitempty"`
	SelectedTemplateID              string                     `json:"selectedTemplateId"`
	EnableSupabaseWriteSQLMigration *bool                      `json:"enableSupabaseWriteSqlMigration,omitempty"`
	SelectedChatMode                string                     `json:"selectedChatMode,omitempty"`
	AcceptedCommunityCode           *bool                      `json:"acceptedCommunityCode,omitempty"`
	EnableAutoFixProblems           *bool                      `json:"enableAutoFixProblems,omitempty"`
	EnableNativeGit                 *bool                      `json:"enableNativeGit,omitempty"`
	EnableAutoUpdate                bool                       `json:"enableAutoUpdate"`
	ReleaseChannel                  string                     `json:"releaseChannel"`
	RuntimeMode2                    string                     `json:"runtimeMode2,omitempty"`
	IsTestMode                      *bool                      `json:"isTestMode,omitempty"`
}

// LargeLanguageModel identifies the model selected for chat.
type LargeLanguageModel struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	CustomModelID *int   `json:"customModelId,omitempty"`
}

// ProviderSetting holds per-provider credentials. Regular providers set only
// APIKey; Vertex-style providers use the project fields and a service
// account key instead.
type ProviderSetting struct {
	APIKey            *secrets.Secret `json:"apiKey,omitempty"`
	ProjectID         string          `json:"projectId,omitempty"`
	Location          string          `json:"location,omitempty"`
	ServiceAccountKey *secrets.Secret `json:"serviceAccountKey,omitempty"`
}

// GithubUser is the account linked through the GitHub device flow.
type GithubUser struct {
	Email string `json:"email"`
}

// OAuthTokens is an access/refresh token pair for an integration such as
// Supabase or Neon.
type OAuthTokens struct {
	AccessToken    *secrets.Secret `json:"accessToken,omitempty"`
	RefreshToken   *secrets.Secret `json:"refreshToken,omitempty"`
	ExpiresIn      *int64          `json:"expiresIn,omitempty"`
	TokenTimestamp *int64          `json:"tokenTimestamp,omitempty"`
}

// Experiments holds opt-in feature toggles.
type Experiments struct {
	EnableSupabaseIntegration *bool `json:"enableSupabaseIntegration,omitempty"`
	EnableFileEditing         *bool `json:"enableFileEditing,omitempty"`
}

// Patch is a partial document keyed by top-level JSON field name. Each value
// replaces the stored key wholesale; a nil value removes it.
type Patch map[string]any

// SecretField is a secret-bearing location in the document.
type SecretField struct {
	Path   string
	Secret *secrets.Secret
}

// SecretFields returns every non-nil secret in a fixed order. Secrets are
// returned by pointer so callers can rewrite them in place.
func (s *UserSettings) SecretFields() []SecretField {
	var fields []SecretField
	add := func(path string, secret *secrets.Secret) {
		if secret != nil {
			fields = append(fields, SecretField{Path: path, Secret: secret})
		}
	}

	add("githubAccessToken", s.GithubAccessToken)
	add("vercelAccessToken", s.VercelAccessToken)
	if s.Supabase != nil {
		add("supabase.accessToken", s.Supabase.AccessToken)
		add("supabase.refreshToken", s.Supabase.RefreshToken)
	}
	if s.Neon != nil {
		add("neon.accessToken", s.Neon.AccessToken)
		add("neon.refreshToken", s.Neon.RefreshToken)
	}

	ids := make([]string, 0, len(s.ProviderSettings))
	for id := range s.ProviderSettings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		add("providerSettings."+id+".apiKey", s.ProviderSettings[id].APIKey)
	}

	return fields
}

// FieldNames returns the top-level JSON field names of the document, sorted.
func FieldNames() []string {
	t := reflect.TypeOf(UserSettings{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsField reports whether name is a top-level field of the document.
func IsField(name string) bool {
	for _, f := range FieldNames() {
		if f == name {
			return true
		}
	}
	return false
}
