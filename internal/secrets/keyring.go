package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/nacl/secretbox"

	kerrors "github.com/PolarWolf314/envkeep/internal/errors"
)

const (
	// DefaultKeyringService is the keychain service that holds the master key.
	DefaultKeyringService = "envkeep"
	// KeyringAccount is the keychain account name of the master key.
	KeyringAccount = "settings-encryption-key"
	// KeySize is the master key size in bytes.
	KeySize = 32

	nonceSize = 24
)

// KeyringBackend seals secrets with a master key kept in the system keychain.
// The key is created on first Encrypt and cached for the life of the backend.
type KeyringBackend struct {
	service string

	mu        sync.Mutex
	key       *[KeySize]byte
	probed    bool
	available bool
}

// NewKeyringBackend returns a backend storing its key under service. An
// empty service uses DefaultKeyringService.
func NewKeyringBackend(service string) *KeyringBackend {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringBackend{service: service}
}

// Service returns the keychain service name in use.
func (b *KeyringBackend) Service() string {
	return b.service
}

// IsAvailable reports whether the keychain can be reached. The probe runs
// once; a missing key still counts as available since it can be created.
func (b *KeyringBackend) IsAvailable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.probed {
		_, err := keyring.Get(b.service, KeyringAccount)
		b.available = err == nil || errors.Is(err, keyring.ErrNotFound)
		b.probed = true
	}
	return b.available
}

func (b *KeyringBackend) Encrypt(plaintext []byte) ([]byte, error) {
	key, err := b.masterKey(true)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

func (b *KeyringBackend) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext too short", kerrors.ErrDecryptFailed)
	}

	key, err := b.masterKey(false)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("%w: ciphertext was not sealed with this machine's key", kerrors.ErrDecryptFailed)
	}
	return plaintext, nil
}

// masterKey loads the key from the keychain, generating and storing one when
// create is set and none exists yet.
func (b *KeyringBackend) masterKey(create bool) (*[KeySize]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.key != nil {
		return b.key, nil
	}

	encoded, err := keyring.Get(b.service, KeyringAccount)
	switch {
	case err == nil:
	case errors.Is(err, keyring.ErrNotFound) && create:
		if encoded, err = b.storeNewKey(); err != nil {
			return nil, err
		}
	case errors.Is(err, keyring.ErrNotFound):
		return nil, fmt.Errorf("%w: no encryption key in keychain service %q", kerrors.ErrDecryptFailed, b.service)
	default:
		return nil, fmt.Errorf("%w: keychain get: %v", kerrors.ErrSecureStorageUnavailable, err)
	}

	key, err := decodeKey(encoded)
	if err != nil {
		return nil, err
	}
	b.key = key
	return key, nil
}

func (b *KeyringBackend) storeNewKey() (string, error) {
	raw := make([]byte, KeySize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating encryption key: %w", err)
	}

	if err := keyring.Set(b.service, KeyringAccount, base64.StdEncoding.EncodeToString(raw)); err != nil {
		return "", fmt.Errorf("%w: keychain set: %v", kerrors.ErrSecureStorageUnavailable, err)
	}

	// Re-read so a key stored concurrently by another process wins.
	encoded, err := keyring.Get(b.service, KeyringAccount)
	if err != nil {
		return "", fmt.Errorf("verifying stored encryption key: %w", err)
	}
	return encoded, nil
}

// DeleteKey removes the master key from the keychain. Secrets sealed with it
// can no longer be decrypted.
func (b *KeyringBackend) DeleteKey() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.key = nil
	if err := keyring.Delete(b.service, KeyringAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}

func decodeKey(encoded string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d", KeySize, len(raw))
	}
	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}
