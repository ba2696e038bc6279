package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// Enumerated values accepted by the document.
const (
	ConsentOptedIn  = "opted_in"
	ConsentOptedOut = "opted_out"
	ConsentUnset    = "unset"

	ChatModeBuild = "build"
	ChatModeAsk   = "ask"

	ReleaseStable = "stable"
	ReleaseBeta   = "beta"
)

var (
	telemetryConsents      = []string{ConsentOptedIn, ConsentOptedOut, ConsentUnset}
	thinkingBudgets        = []string{"low", "medium", "high"}
	smartContextOptions    = []string{"balanced", "conservative"}
	chatModes              = []string{ChatModeBuild, ChatModeAsk}
	releaseChannels        = []string{ReleaseStable, ReleaseBeta}
	runtimeModes           = []string{"host", "docker"}
	requiredDocumentFields = []string{"selectedModel", "providerSettings", "selectedTemplateId", "enableAutoUpdate", "releaseChannel"}
)

// document is the raw top-level form used for shallow merges.
type document map[string]json.RawMessage

func toDocument(s *UserSettings) (document, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return doc, nil
}

// decodeDocument converts a merged document into typed settings. Unknown
// fields are dropped before decoding, since encoding/json matches names
// case-insensitively and a key such as "selectedmodel" would otherwise
// override "selectedModel". Required fields must be present and non-null.
func decodeDocument(doc document) (*UserSettings, error) {
	known := make(document, len(doc))
	for key, raw := range doc {
		if IsField(key) {
			known[key] = raw
		}
	}
	doc = known

	for _, field := range requiredDocumentFields {
		raw, ok := doc[field]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: %s is required", kerrors.ErrInvalidSettings, field)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidSettings, err)
	}

	var s UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidSettings, err)
	}
	return &s, nil
}

// normalize drops Vertex-only provider fields from entries that carry an
// API key, matching how regular provider entries are stored.
func (s *UserSettings) normalize() {
	for id, p := range s.ProviderSettings {
		if p.APIKey != nil {
			s.ProviderSettings[id] = ProviderSetting{APIKey: p.APIKey}
		}
	}
}

// Validate checks required fields, enumerations and secret tags.
func (s *UserSettings) Validate() error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.SelectedModel.Name == "" {
		fail("selectedModel.name is required")
	}
	if s.SelectedModel.Provider == "" {
		fail("selectedModel.provider is required")
	}
	if s.ProviderSettings == nil {
		fail("providerSettings is required")
	}

	checkEnum := func(field, value string, allowed []string, optional bool) {
		if value == "" && optional {
			return
		}
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		fail("%s: invalid value %q (expected one of %v)", field, value, allowed)
	}
	checkEnum("telemetryConsent", s.TelemetryConsent, telemetryConsents, true)
	checkEnum("thinkingBudget", s.ThinkingBudget, thinkingBudgets, true)
	checkEnum("proSmartContextOption", s.ProSmartContextOption, smartContextOptions, true)
	checkEnum("selectedChatMode", s.SelectedChatMode, chatModes, true)
	checkEnum("releaseChannel", s.ReleaseChannel, releaseChannels, false)
	checkEnum("runtimeMode2", s.RuntimeMode2, runtimeModes, true)

	for _, f := range s.SecretFields() {
		if !f.Secret.EncryptionType.Valid() {
			fail("%s: unknown encryptionType %q", f.Path, f.Secret.EncryptionType)
		}
	}
	for id, p := range s.ProviderSettings {
		if p.ServiceAccountKey != nil && !p.ServiceAccountKey.EncryptionType.Valid() {
			fail("providerSettings.%s.serviceAccountKey: unknown encryptionType %q", id, p.ServiceAccountKey.EncryptionType)
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidSettings, problems)
	}
	return nil
}
