package seal_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entropyseed/seedseal/internal/entropy"
	"github.com/entropyseed/seedseal/internal/models"
)

func capturePool(t *testing.T) *models.MeasurementPool {
	t.Helper()

	features := []models.Feature{
		{X: 412, Y: 333, Magnitude: 1890},
		{X: 101, Y: 87, Magnitude: 455},
		{X: 650, Y: 12, Magnitude: 2201},
	}
	pool, err := entropy.NewPool(features, bytes.Repeat([]byte{0x2a}, models.PixelSampleSize))
	require.NoError(t, err)
	return pool
}

func TestSession(t *testing.T) {
	svc := newService(t)

	t.Run("round trip within one session", func(t *testing.T) {
		sess, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)
		defer sess.Close()

		plaintext := []byte("ephemeral phrase")
		aad := []byte("capture-1")

		packaged, err := sess.Seal(plaintext, aad)
		require.NoError(t, err)
		assert.Len(t, packaged, 28+len(plaintext)+16)

		recovered, err := sess.Open(packaged, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, recovered)
	})

	t.Run("packages do not cross sessions", func(t *testing.T) {
		sessA, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)
		defer sessA.Close()

		sessB, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)
		defer sessB.Close()

		packaged, err := sessA.Seal([]byte("secret"), nil)
		require.NoError(t, err)

		_, err = sessB.Open(packaged, nil)
		assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
	})

	t.Run("aad binding", func(t *testing.T) {
		sess, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)
		defer sess.Close()

		packaged, err := sess.Seal([]byte("bound"), []byte("A1"))
		require.NoError(t, err)

		_, err = sess.Open(packaged, []byte("A2"))
		assert.ErrorIs(t, err, models.ErrAuthenticationFailed)
	})

	t.Run("closed session refuses work", func(t *testing.T) {
		sess, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)

		packaged, err := sess.Seal([]byte("before close"), nil)
		require.NoError(t, err)

		sess.Close()

		_, err = sess.Seal([]byte("after close"), nil)
		assert.ErrorIs(t, err, models.ErrSessionClosed)

		_, err = sess.Open(packaged, nil)
		assert.ErrorIs(t, err, models.ErrSessionClosed)

		// Close is idempotent.
		sess.Close()
	})

	t.Run("successive seals differ", func(t *testing.T) {
		sess, err := svc.NewSession(capturePool(t))
		require.NoError(t, err)
		defer sess.Close()

		a, err := sess.Seal([]byte("same"), nil)
		require.NoError(t, err)
		b, err := sess.Seal([]byte("same"), nil)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("empty pool is invalid seed", func(t *testing.T) {
		_, err := svc.NewSession(nil)
		assert.ErrorIs(t, err, models.ErrInvalidSeed)
	})
}
