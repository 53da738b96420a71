package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/entropyseed/seedseal/internal/models"
)

// Seal encrypts plaintext under an AES-256-GCM key with the given nonce
// and optional associated data. The returned bytes are ciphertext
// followed by the 16-byte authentication tag.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open verifies and decrypts sealed bytes produced by Seal. Verification
// and decryption are one atomic operation inside GCM: on any tag
// mismatch (wrong key, wrong nonce, wrong associated data, or corrupted
// ciphertext) it returns ErrAuthenticationFailed and no plaintext, ever.
func Open(key, nonce, sealed, aad []byte) ([]byte, error) {
	aead, err := newGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, models.ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newGCM(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return aead, nil
}
