package service

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/stringveil/internal/crypto/domain"
)

// hkdfInfo binds derived keys to this tool and key schema version. Changing it
// changes every seed-derived key, so it is versioned.
const hkdfInfo = "stringveil-build-key-v1"

type keyProvider struct{}

// NewKeyProvider creates the default key provider backed by crypto/rand for
// fresh keys and HKDF-SHA256 for seed-derived keys.
func NewKeyProvider() KeyProvider {
	return &keyProvider{}
}

// NewKey generates a cryptographically secure random 32-byte key.
func (p *keyProvider) NewKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate build key: %w", err)
	}
	return key, nil
}

// KeyFromSeed expands the seed into a 32-byte key using HKDF-SHA256. The
// derivation is one-way: the seed cannot be recovered from the key or from
// anything the build emits.
func (p *keyProvider) KeyFromSeed(seed []byte) ([]byte, error) {
	if len(seed) == 0 {
		return nil, cryptoDomain.ErrEmptySeed
	}

	reader := hkdf.New(sha256.New, seed, nil, []byte(hkdfInfo))
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key from seed: %w", err)
	}
	return key, nil
}
