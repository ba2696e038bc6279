package secrets

import (
	"encoding/base64"
	"fmt"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// Codec encrypts and decrypts secrets through a Backend. It holds no state
// between calls.
type Codec struct {
	backend  Backend
	testMode bool
}

// NewCodec returns a codec over backend. A nil backend behaves like
// PlaintextBackend. In test mode Encrypt never uses the backend.
func NewCodec(backend Backend, testMode bool) *Codec {
	if backend == nil {
		backend = PlaintextBackend{}
	}
	return &Codec{backend: backend, testMode: testMode}
}

// Available reports whether Encrypt will use secure storage.
func (c *Codec) Available() bool {
	return !c.testMode && c.backend.IsAvailable()
}

// Encrypt encodes plaintext for storage. Without secure storage the value is
// returned unchanged and tagged as plaintext.
func (c *Codec) Encrypt(plaintext string) (Secret, error) {
	if !c.Available() {
		return Secret{Value: plaintext, EncryptionType: EncryptionPlaintext}, nil
	}

	sealed, err := c.backend.Encrypt([]byte(plaintext))
	if err != nil {
		return Secret{}, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	return Secret{
		Value:          base64.StdEncoding.EncodeToString(sealed),
		EncryptionType: EncryptionSecureStorage,
	}, nil
}

// Decrypt returns the plaintext of s. Only secrets tagged with
// EncryptionSecureStorage go through the backend; anything else is returned
// as-is.
func (c *Codec) Decrypt(s Secret) (string, error) {
	if s.EncryptionType != EncryptionSecureStorage {
		return s.Value, nil
	}

	sealed, err := base64.StdEncoding.DecodeString(s.Value)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", kerrors.ErrDecryptFailed, err)
	}

	plaintext, err := c.backend.Decrypt(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}

	return string(plaintext), nil
}
