package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
	logger "github.com/PolarWolf314/envkeep/internal/logging"
	"github.com/PolarWolf314/envkeep/internal/secrets"
)

// Store reads and writes one settings file. It is not safe for concurrent
// writers: Save is a read-merge-write with no file lock.
type Store struct {
	path        string
	codec       *secrets.Codec
	log         logger.Logger
	telemetryID string
}

// NewStore returns a store for the settings file at path. The telemetry
// identity in its defaults is generated once per store.
func NewStore(path string, codec *secrets.Codec, log logger.Logger) *Store {
	if codec == nil {
		codec = secrets.NewCodec(nil, false)
	}
	return &Store{
		path:        path,
		codec:       codec,
		log:         log,
		telemetryID: GenerateTelemetryID(),
	}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Codec returns the codec used for secret fields.
func (s *Store) Codec() *secrets.Codec {
	return s.codec
}

// Defaults returns a fresh copy of this store's default document.
func (s *Store) Defaults() *UserSettings {
	return Defaults(s.telemetryID)
}

// Load returns the decrypted settings document. A missing file is created
// with the defaults. Any other failure is returned.
func (s *Store) Load() (*UserSettings, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		defaults := s.Defaults()
		s.log.Debugf("Settings file %s not found, writing defaults", s.path)
		if err := s.writeFile(defaults); err != nil {
			return nil, fmt.Errorf("writing default settings: %w", err)
		}
		return defaults, nil
	}

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	settings, err := decodeDocument(doc)
	if err != nil {
		return nil, err
	}

	for _, f := range settings.SecretFields() {
		if f.Secret.EncryptionType == "" {
			continue
		}
		plaintext, err := s.codec.Decrypt(*f.Secret)
		if err != nil {
			return nil, fmt.Errorf("decrypting %s: %w", f.Path, err)
		}
		f.Secret.Value = plaintext
	}

	settings.normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Read returns the decrypted settings, or the defaults if the file cannot be
// used. The defaults are not written back in that case.
func (s *Store) Read() *UserSettings {
	settings, err := s.Load()
	if err != nil {
		s.log.Errorf("Error reading settings: %v", err)
		return s.Defaults()
	}
	return settings
}

// Save merges patch over the current settings, encrypts every secret and
// writes the file. If the current settings cannot be loaded the error is
// returned and the file is left as it is.
func (s *Store) Save(patch Patch) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	return s.apply(current, patch)
}

// Write merges patch over Read, so a file that cannot be loaded is replaced
// by the defaults plus patch. Errors are logged instead of returned.
func (s *Store) Write(patch Patch) {
	if err := s.apply(s.Read(), patch); err != nil {
		s.log.Errorf("Error writing settings: %v", err)
	}
}

// apply shallow-merges patch over current and writes the result.
func (s *Store) apply(current *UserSettings, patch Patch) error {
	doc, err := toDocument(current)
	if err != nil {
		return err
	}

	for key, value := range patch {
		if value == nil {
			delete(doc, key)
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		doc[key] = raw
	}

	next, err := decodeDocument(doc)
	if err != nil {
		return err
	}

	for _, f := range next.SecretFields() {
		encrypted, err := s.codec.Encrypt(f.Secret.Value)
		if err != nil {
			return fmt.Errorf("encrypting %s: %w", f.Path, err)
		}
		*f.Secret = encrypted
	}

	next.normalize()
	if err := next.Validate(); err != nil {
		return err
	}

	return s.writeFile(next)
}

// readDocument returns the stored object merged over the defaults.
func (s *Store) readDocument() (document, error) {
	stored, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	doc, err := toDocument(s.Defaults())
	if err != nil {
		return nil, err
	}
	for key, value := range stored {
		doc[key] = value
	}
	return doc, nil
}

// readRaw parses the settings file without merging or decoding.
func (s *Store) readRaw() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrSettingsCorrupt, err)
	}

	var stored document
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrSettingsCorrupt, err)
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", kerrors.ErrSettingsCorrupt)
	}
	return stored, nil
}

func (s *Store) writeFile(settings *UserSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
