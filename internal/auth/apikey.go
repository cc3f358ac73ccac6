package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned for a missing or unknown API key.
var ErrInvalidKey = errors.New("invalid API key")

// KeyStore checks API keys against a set of bcrypt hashes. An empty store
// accepts every request.
type KeyStore struct {
	hashes [][]byte

	// bcrypt is slow on purpose; remember keys that already passed
	mu       sync.RWMutex
	verified map[[sha256.Size]byte]struct{}
}

// NewKeyStore creates a store from bcrypt hashes such as those printed by
// HashKey.
func NewKeyStore(hashes []string) (*KeyStore, error) {
	ks := &KeyStore{verified: make(map[[sha256.Size]byte]struct{})}
	for i, h := range hashes {
		h = strings.TrimSpace(h)
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("api key hash %d: %w", i, err)
		}
		ks.hashes = append(ks.hashes, []byte(h))
	}
	return ks, nil
}

// Enabled reports whether any key is configured.
func (k *KeyStore) Enabled() bool {
	return len(k.hashes) > 0
}

// Verify returns nil if key matches one of the configured hashes, or if the
// store has none.
func (k *KeyStore) Verify(key string) error {
	if !k.Enabled() {
		return nil
	}
	if key == "" {
		return ErrInvalidKey
	}

	if k.Verified(key) {
		return nil
	}

	sum := sha256.Sum256([]byte(key))
	for _, h := range k.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(key)) == nil {
			k.mu.Lock()
			k.verified[sum] = struct{}{}
			k.mu.Unlock()
			return nil
		}
	}
	return ErrInvalidKey
}

// Verified reports whether key already passed Verify, without a bcrypt
// comparison.
func (k *KeyStore) Verified(key string) bool {
	sum := sha256.Sum256([]byte(key))
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.verified[sum]
	return ok
}

// HashKey returns the bcrypt hash of key for use in api_key_hashes.
func HashKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hash), nil
}
