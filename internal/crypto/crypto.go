// Package crypto implements the seed-derived encryption core: canonical
// seed encoding, entropy mixing, HKDF key derivation, AES-256-GCM
// sealing, and the at-rest package layout.
//
// The data flow for one operation is linear:
//
//	CoordinateBytes/PoolBytes -> MixSeed -> DeriveKey -> Seal/Open
//
// with Pack/Unpack translating between the sealed bytes and the
// self-contained container salt(16) || nonce(12) || ciphertext+tag.
// Nothing in this package retains state between calls, and no function
// here logs key material or plaintext.
package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// KeySize is the derived AES-256 key length.
	KeySize = 32

	// SaltSize is the per-operation key-derivation salt length.
	SaltSize = 16

	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16

	// MinPackageSize is the shortest structurally valid package:
	// salt and nonce with a zero-length sealed section. Anything
	// shorter cannot even be split; anything at least this long is
	// split positionally and judged by AEAD verification alone.
	MinPackageSize = SaltSize + NonceSize
)

// Errors
var (
	ErrInvalidKey   = fmt.Errorf("invalid key size: need %d bytes", KeySize)
	ErrInvalidSalt  = fmt.Errorf("invalid salt size: need %d bytes", SaltSize)
	ErrInvalidNonce = fmt.Errorf("invalid nonce size: need %d bytes", NonceSize)
)

// NewSalt returns a fresh key-derivation salt from the OS CSPRNG.
func NewSalt() ([]byte, error) {
	return randomBytes(SaltSize, "salt")
}

// NewNonce returns a fresh AEAD nonce from the OS CSPRNG.
//
// Nonce freshness is the only reuse-safety mechanism when a key is
// reused across messages, so generation failure is always surfaced;
// there is no fallback source.
func NewNonce() ([]byte, error) {
	return randomBytes(NonceSize, "nonce")
}

func randomBytes(n int, what string) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("generate %s: %w", what, err)
	}
	return b, nil
}
