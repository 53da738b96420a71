package crypto_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/models"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, crypto.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestSealOpen(t *testing.T) {
	key := randomKey(t)
	nonce, err := crypto.NewNonce()
	require.NoError(t, err)

	plaintext := []byte("attack at dawn")
	aad := []byte("header")

	t.Run("round trip with associated data", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, aad)
		require.NoError(t, err)
		assert.Len(t, sealed, len(plaintext)+crypto.TagSize)

		recovered, err := crypto.Open(key, nonce, sealed, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, recovered)
	})

	t.Run("round trip without associated data", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, nil)
		require.NoError(t, err)

		recovered, err := crypto.Open(key, nonce, sealed, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, recovered)
	})

	t.Run("empty plaintext seals to a bare tag", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, nil, aad)
		require.NoError(t, err)
		assert.Len(t, sealed, crypto.TagSize)

		recovered, err := crypto.Open(key, nonce, sealed, aad)
		require.NoError(t, err)
		assert.Empty(t, recovered)
	})

	t.Run("tampering fails authentication", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, aad)
		require.NoError(t, err)

		// Flip one bit in the ciphertext body and one in the tag.
		for _, idx := range []int{0, len(sealed) - 1} {
			tampered := make([]byte, len(sealed))
			copy(tampered, sealed)
			tampered[idx] ^= 0x01

			_, err := crypto.Open(key, nonce, tampered, aad)
			assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
		}
	})

	t.Run("wrong associated data fails authentication", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, aad)
		require.NoError(t, err)

		_, err = crypto.Open(key, nonce, sealed, []byte("other"))
		assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, aad)
		require.NoError(t, err)

		_, err = crypto.Open(randomKey(t), nonce, sealed, aad)
		assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
	})

	t.Run("wrong nonce fails authentication", func(t *testing.T) {
		sealed, err := crypto.Seal(key, nonce, plaintext, aad)
		require.NoError(t, err)

		otherNonce, err := crypto.NewNonce()
		require.NoError(t, err)

		_, err = crypto.Open(key, otherNonce, sealed, aad)
		assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
	})

	t.Run("rejects bad key and nonce sizes", func(t *testing.T) {
		_, err := crypto.Seal(key[:16], nonce, plaintext, nil)
		assert.ErrorIs(t, err, crypto.ErrInvalidKey)

		_, err = crypto.Seal(key, nonce[:8], plaintext, nil)
		assert.ErrorIs(t, err, crypto.ErrInvalidNonce)

		_, err = crypto.Open(key[:16], nonce, nil, nil)
		assert.ErrorIs(t, err, crypto.ErrInvalidKey)

		_, err = crypto.Open(key, nonce[:8], nil, nil)
		assert.ErrorIs(t, err, crypto.ErrInvalidNonce)
	})
}
