package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Derivation labels. Each use of an intermediate secret gets its own
// label so the derived outputs are cryptographically unrelated.
// CoordinateKeyInfo is a wire constant: changing it breaks decryption of
// every existing coordinate-sealed package.
const (
	CoordinateKeyInfo = "coords->aes256"
	PoolKeyInfo       = "pool->aes256"
)

// DeriveKey expands an intermediate secret into a symmetric key using
// HKDF-SHA256 with a nil extract salt and the given info label.
// Deterministic for equal inputs.
func DeriveKey(secret, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("invalid key length %d", length)
	}

	reader := hkdf.New(sha256.New, secret, nil, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	return key, nil
}
