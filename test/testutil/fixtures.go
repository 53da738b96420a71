// Package testutil provides shared fixtures for integration and
// benchmark tests.
package testutil

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/entropyseed/seedseal/internal/entropy"
	"github.com/entropyseed/seedseal/internal/models"
)

// FixedSeed returns a deterministic coordinate seed shared across
// integration tests. Callers must not mutate it.
func FixedSeed() models.CoordinateSeed {
	return models.CoordinateSeed{
		{X: 12.971599, Y: 77.594566},
		{X: 12.9716, Y: 77.59456},
		{X: -33.868820, Y: 151.209290},
	}
}

// RandomBytes returns n bytes from crypto/rand, failing the test on
// a short read.
func RandomBytes(t testing.TB, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, buf)
	require.NoError(t, err)
	return buf
}

// CapturePool builds a measurement pool with the given number of
// random features and a random pixel sample.
func CapturePool(t testing.TB, featureCount int) *models.MeasurementPool {
	t.Helper()

	features := make([]models.Feature, featureCount)
	for i := range features {
		raw := RandomBytes(t, 12)
		features[i] = models.Feature{
			X:         int32(binary.LittleEndian.Uint32(raw[0:4]) % 1920),
			Y:         int32(binary.LittleEndian.Uint32(raw[4:8]) % 1080),
			Magnitude: int32(binary.LittleEndian.Uint32(raw[8:12]) % 4096),
		}
	}

	pool, err := entropy.NewPool(features, RandomBytes(t, models.PixelSampleSize))
	require.NoError(t, err)
	return pool
}
