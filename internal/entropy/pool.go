package entropy

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/models"
)

// NewPool assembles a measurement pool from captured features and the
// fixed-size pixel sample, appending a fresh block of OS randomness.
// The OS block makes every pool unique even for identical captures.
func NewPool(features []models.Feature, pixelSample []byte) (*models.MeasurementPool, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: capture produced no features", models.ErrInvalidSeed)
	}
	if len(pixelSample) != models.PixelSampleSize {
		return nil, fmt.Errorf("%w: pixel sample is %d bytes, need %d",
			models.ErrInvalidSeed, len(pixelSample), models.PixelSampleSize)
	}

	osEntropy := make([]byte, models.OSEntropySize)
	if _, err := io.ReadFull(rand.Reader, osEntropy); err != nil {
		return nil, fmt.Errorf("read OS entropy: %w", err)
	}

	pool := &models.MeasurementPool{
		Features:    make([]models.Feature, len(features)),
		PixelSample: make([]byte, len(pixelSample)),
		OSEntropy:   osEntropy,
		CapturedAt:  time.Now().UTC(),
	}
	copy(pool.Features, features)
	copy(pool.PixelSample, pixelSample)

	return pool, nil
}

// AuditSample returns the pool prefix written to the audit artifact:
// the first AuditSampleSize bytes of the canonical encoding. The sample
// contains the seed material itself, so the artifact is as sensitive as
// the derived key; it exists for capture diagnostics, never for
// decryption.
func AuditSample(pool *models.MeasurementPool) ([]byte, error) {
	canonical, err := crypto.PoolBytes(pool)
	if err != nil {
		return nil, err
	}

	if len(canonical) > models.AuditSampleSize {
		canonical = canonical[:models.AuditSampleSize]
	}
	return canonical, nil
}
