package secrets

// EncryptionType records how a Secret's value is encoded at rest.
type EncryptionType string

const (
	// EncryptionSecureStorage marks a base64 value sealed by the platform
	// secure storage backend.
	EncryptionSecureStorage EncryptionType = "electron-safe-storage"

	// EncryptionPlaintext marks a value stored as-is.
	EncryptionPlaintext EncryptionType = "plaintext"
)

// Valid reports whether t is empty or one of the known encryption types.
func (t EncryptionType) Valid() bool {
	switch t {
	case "", EncryptionSecureStorage, EncryptionPlaintext:
		return true
	}
	return false
}

// Secret is a sensitive string tagged with its encoding.
type Secret struct {
	Value          string         `json:"value"`
	EncryptionType EncryptionType `json:"encryptionType,omitempty"`
}

// NewSecret returns an untagged secret holding plaintext.
func NewSecret(plaintext string) *Secret {
	return &Secret{Value: plaintext}
}

// Masked returns a display form of value that reveals at most its last four
// characters.
func Masked(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 8 {
		return "********"
	}
	return "****" + string(runes[len(runes)-4:])
}
