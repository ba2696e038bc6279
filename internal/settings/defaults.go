package settings

import "github.com/google/uuid"

// GenerateTelemetryID returns a new random telemetry identity.
func GenerateTelemetryID() string {
	return uuid.New().String()
}

// Defaults returns a fresh copy of the default document carrying telemetryID.
func Defaults(telemetryID string) *UserSettings {
	return &UserSettings{
		SelectedModel: LargeLanguageModel{
			Name:     "auto",
			Provider: "auto",
		},
		ProviderSettings:               map[string]ProviderSetting{},
		TelemetryConsent:               ConsentUnset,
		TelemetryUserID:                telemetryID,
		HasRunBefore:                   boolPtr(false),
		Experiments:                    &Experiments{},
		EnableProLazyEditsMode:         boolPtr(true),
		EnableProSmartFilesContextMode: boolPtr(true),
		SelectedTemplateID:             "react",
		SelectedChatMode:               ChatModeBuild,
		EnableAutoFixProblems:          boolPtr(false),
		EnableAutoUpdate:               true,
		ReleaseChannel:                 ReleaseStable,
	}
}

func boolPtr(b bool) *bool {
	return &b
}
