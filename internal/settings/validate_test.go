package settings

import (
	"errors"
	"reflect"
	"testing"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	"github.com/PolarWolf314/envkeep/internal/secrets"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *UserSettings)
		wantErr bool
	}{
		{"defaults", func(s *UserSettings) {}, false},
		{"beta channel", func(s *UserSettings) { s.ReleaseChannel = ReleaseBeta }, false},
		{"ask mode", func(s *UserSettings) { s.SelectedChatMode = ChatModeAsk }, false},
		{"docker runtime", func(s *UserSettings) { s.RuntimeMode2 = "docker" }, false},
		{"empty model name", func(s *UserSettings) { s.SelectedModel.Name = "" }, true},
		{"empty provider", func(s *UserSettings) { s.SelectedModel.Provider = "" }, true},
		{"nil provider settings", func(s *UserSettings) { s.ProviderSettings = nil }, true},
		{"empty release channel", func(s *UserSettings) { s.ReleaseChannel = "" }, true},
		{"bad consent", func(s *UserSettings) { s.TelemetryConsent = "maybe" }, true},
		{"bad thinking budget", func(s *UserSettings) { s.ThinkingBudget = "extreme" }, true},
		{"bad smart context", func(s *UserSettings) { s.ProSmartContextOption = "aggressive" }, true},
		{
			"bad secret tag",
			func(s *UserSettings) {
				s.GithubAccessToken = &secrets.Secret{Value: "x", EncryptionType: "base64"}
			},
			true,
		},
		{
			"bad service account tag",
			func(s *UserSettings) {
				s.ProviderSettings["vertex"] = ProviderSetting{
					ProjectID:         "p",
					ServiceAccountKey: &secrets.Secret{Value: "{}", EncryptionType: "kms"},
				}
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults("id")
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, kerrors.ErrInvalidSettings) {
				t.Errorf("Expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSecretFieldsOrder(t *testing.T) {
	s := Defaults("id")
	s.ProviderSettings = map[string]ProviderSetting{
		"openai":    {APIKey: secrets.NewSecret("o")},
		"anthropic": {APIKey: secrets.NewSecret("a")},
		"vertex":    {ProjectID: "p"},
	}
	s.Neon = &OAuthTokens{RefreshToken: secrets.NewSecret("nr")}
	s.GithubAccessToken = secrets.NewSecret("gh")

	var paths []string
	for _, f := range s.SecretFields() {
		paths = append(paths, f.Path)
	}

	want := []string{
		"githubAccessToken",
		"neon.refreshToken",
		"providerSettings.anthropic.apiKey",
		"providerSettings.openai.apiKey",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("SecretFields() = %v, want %v", paths, want)
	}
}

func TestSecretFieldsAreAddressable(t *testing.T) {
	s := Defaults("id")
	s.ProviderSettings["openai"] = ProviderSetting{APIKey: secrets.NewSecret("before")}

	for _, f := range s.SecretFields() {
		f.Secret.Value = "after"
	}

	if got := s.ProviderSettings["openai"].APIKey.Value; got != "after" {
		t.Errorf("Expected in-place rewrite, got %q", got)
	}
}

func TestIsField(t *testing.T) {
	for _, name := range []string{"selectedModel", "githubAccessToken", "releaseChannel", "runtimeMode2"} {
		if !IsField(name) {
			t.Errorf("Expected %s to be a settings field", name)
		}
	}
	for _, name := range []string{"", "SelectedModel", "enableDyadPro", "unknownField"} {
		if IsField(name) {
			t.Errorf("Expected %s not to be a settings field", name)
		}
	}
}

func TestInspect(t *testing.T) {
	t.Run("missing file is healthy", func(t *testing.T) {
		ts := newTestStore(t, true)
		report := ts.Inspect()
		if report.Exists || !report.Healthy() {
			t.Errorf("Unexpected report for missing file: %+v", report)
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		ts := newTestStore(t, true)
		ts.writeRaw(t, "{")
		report := ts.Inspect()
		if !errors.Is(report.ParseErr, kerrors.ErrSettingsCorrupt) {
			t.Errorf("Expected parse error, got %v", report.ParseErr)
		}
		if report.Healthy() {
			t.Errorf("Expected corrupt file to be unhealthy")
		}
	})

	t.Run("isolates undecryptable secret", func(t *testing.T) {
		ts := newTestStore(t, true)
		ts.writeJSON(t, map[string]any{
			"githubAccessToken": map[string]any{"value": sealed("gh"), "encryptionType": "electron-safe-storage"},
			"vercelAccessToken": map[string]any{"value": "Zm9yZWlnbg==", "encryptionType": "electron-safe-storage"},
		})

		report := ts.Inspect()
		if report.Healthy() {
			t.Fatalf("Expected report to be unhealthy")
		}
		if len(report.Secrets) != 2 {
			t.Fatalf("Expected 2 secrets, got %d", len(report.Secrets))
		}
		if report.Secrets[0].Path != "githubAccessToken" || report.Secrets[0].Err != nil {
			t.Errorf("Expected github token to decrypt, got %+v", report.Secrets[0])
		}
		if report.Secrets[1].Path != "vercelAccessToken" || !errors.Is(report.Secrets[1].Err, kerrors.ErrDecryptFailed) {
			t.Errorf("Expected vercel token to fail, got %+v", report.Secrets[1])
		}
	})

	t.Run("schema failure", func(t *testing.T) {
		ts := newTestStore(t, true)
		ts.writeJSON(t, map[string]any{"releaseChannel": "nightly"})
		report := ts.Inspect()
		if !errors.Is(report.ValidationErr, kerrors.ErrInvalidSettings) {
			t.Errorf("Expected validation error, got %v", report.ValidationErr)
		}
	})
}
