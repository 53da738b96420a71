package entropy

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/entropyseed/seedseal/internal/models"
)

// NoiseSource is a stand-in capture source for the CLI demo and tests.
// It fabricates plausible ranked features from the OS CSPRNG instead of
// running a visual simulation, so pools built from it have the right
// shape without any rendering pipeline.
type NoiseSource struct {
	Width        int32
	Height       int32
	FeatureCount int
}

// NewNoiseSource returns a source with the demo scene dimensions.
func NewNoiseSource() *NoiseSource {
	return &NoiseSource{
		Width:        1000,
		Height:       700,
		FeatureCount: 96,
	}
}

// Capture fabricates one measurement pool.
func (s *NoiseSource) Capture(ctx context.Context) (*models.MeasurementPool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.FeatureCount <= 0 || s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: noise source misconfigured", models.ErrInvalidSeed)
	}

	raw := make([]byte, s.FeatureCount*12)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("read feature randomness: %w", err)
	}

	features := make([]models.Feature, s.FeatureCount)
	for i := range features {
		off := i * 12
		features[i] = models.Feature{
			X:         int32(binary.LittleEndian.Uint32(raw[off:]) % uint32(s.Width)),
			Y:         int32(binary.LittleEndian.Uint32(raw[off+4:]) % uint32(s.Height)),
			Magnitude: int32(binary.LittleEndian.Uint32(raw[off+8:]) % 4096),
		}
	}

	pixelSample := make([]byte, models.PixelSampleSize)
	if _, err := io.ReadFull(rand.Reader, pixelSample); err != nil {
		return nil, fmt.Errorf("read pixel sample: %w", err)
	}

	return NewPool(features, pixelSample)
}
