package secrets

import (
	"fmt"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

// Backend is a platform secure storage facility for short byte strings
// bound to the local user.
type Backend interface {
	IsAvailable() bool
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// PlaintextBackend is used when no secure storage is configured. It is never
// available, so the codec stores every secret as plaintext.
type PlaintextBackend struct{}

func (PlaintextBackend) IsAvailable() bool { return false }

func (PlaintextBackend) Encrypt([]byte) ([]byte, error) {
	return nil, kerrors.ErrSecureStorageUnavailable
}

func (PlaintextBackend) Decrypt([]byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: %w", kerrors.ErrDecryptFailed, kerrors.ErrSecureStorageUnavailable)
}
