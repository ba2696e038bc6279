package settings

import (
	"os"

	"github.com/PolarWolf314/envkeep/internal/secrets"
)

// SecretStatus reports whether one stored secret can be decrypted.
type SecretStatus struct {
	Path           string
	EncryptionType secrets.EncryptionType
	Err            error
}

// Report describes the settings file as stored, field by field. It lets a
// caller see which part of a file Read would reject.
type Report struct {
	Exists        bool
	ParseErr      error
	ValidationErr error
	Secrets       []SecretStatus
}

// Inspect examines the settings file without writing to it or falling back
// to defaults. Each secret is decrypted independently.
func (s *Store) Inspect() *Report {
	report := &Report{}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return report
	}
	report.Exists = true

	doc, err := s.readDocument()
	if err != nil {
		report.ParseErr = err
		return report
	}

	settings, err := decodeDocument(doc)
	if err != nil {
		report.ValidationErr = err
		return report
	}

	for _, f := range settings.SecretFields() {
		status := SecretStatus{Path: f.Path, EncryptionType: f.Secret.EncryptionType}
		if f.Secret.EncryptionType != "" {
			_, status.Err = s.codec.Decrypt(*f.Secret)
		}
		report.Secrets = append(report.Secrets, status)
	}

	report.ValidationErr = settings.Validate()
	return report
}

// Healthy reports whether Load would succeed on the file as inspected.
func (r *Report) Healthy() bool {
	if !r.Exists {
		return true
	}
	if r.ParseErr != nil || r.ValidationErr != nil {
		return false
	}
	for _, s := range r.Secrets {
		if s.Err != nil {
			return false
		}
	}
	return true
}
