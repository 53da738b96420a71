package crypto

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/entropyseed/seedseal/internal/models"
)

// DefaultPrecision is the decimal precision applied to coordinate
// components when the caller does not choose one.
const DefaultPrecision = 6

// CoordinateBytes deterministically encodes an ordered coordinate seed.
//
// Each component is scaled by 10^precision, rounded half away from zero,
// and written as a signed 8-byte big-endian integer, 16 bytes per pair,
// in input order. The rounding direction is fixed: an encoder and a
// decoder disagreeing on it derive different keys, which surfaces only
// as an authentication failure.
//
// Encoding the same seed with the same precision always yields identical
// bytes; this is what makes the decrypt path possible.
func CoordinateBytes(seed models.CoordinateSeed, precision int) ([]byte, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("%w: empty coordinate seed", models.ErrInvalidSeed)
	}
	if precision < 0 {
		return nil, fmt.Errorf("%w: negative precision %d", models.ErrInvalidSeed, precision)
	}

	scale := math.Pow10(precision)
	buf := make([]byte, 0, len(seed)*16)

	for i, c := range seed {
		for _, v := range [2]float64{c.X, c.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite component in pair %d", models.ErrInvalidSeed, i)
			}

			scaled := math.Round(v * scale)
			// MaxInt64 rounds up to exactly 2^63 as a float64, which
			// is itself out of range, so the guard is inclusive.
			if scaled >= math.MaxInt64 || scaled < math.MinInt64 {
				return nil, fmt.Errorf("%w: component in pair %d overflows at precision %d",
					models.ErrInvalidSeed, i, precision)
			}

			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(int64(scaled)))
			buf = append(buf, b[:]...)
		}
	}

	return buf, nil
}

// PoolBytes encodes a measurement pool into its constant-length
// canonical form: the top MaxPoolFeatures features ranked by descending
// magnitude (ties keep input order), each as three little-endian int32,
// zero-padded to the full feature block, then the pixel sample and OS
// entropy blocks verbatim.
//
// The result is constant-length regardless of how many features the
// capture produced, and is never reproducible: the OS entropy block
// makes every capture encode differently.
func PoolBytes(pool *models.MeasurementPool) ([]byte, error) {
	if pool == nil || len(pool.Features) == 0 {
		return nil, fmt.Errorf("%w: empty measurement pool", models.ErrInvalidSeed)
	}
	if len(pool.PixelSample) != models.PixelSampleSize {
		return nil, fmt.Errorf("%w: pixel sample is %d bytes, need %d",
			models.ErrInvalidSeed, len(pool.PixelSample), models.PixelSampleSize)
	}
	if len(pool.OSEntropy) != models.OSEntropySize {
		return nil, fmt.Errorf("%w: OS entropy block is %d bytes, need %d",
			models.ErrInvalidSeed, len(pool.OSEntropy), models.OSEntropySize)
	}

	ranked := make([]models.Feature, len(pool.Features))
	copy(ranked, pool.Features)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Magnitude > ranked[j].Magnitude
	})
	if len(ranked) > models.MaxPoolFeatures {
		ranked = ranked[:models.MaxPoolFeatures]
	}

	buf := make([]byte, models.PoolCanonicalSize)
	for i, f := range ranked {
		off := i * models.FeatureEncodedSize
		binary.LittleEndian.PutUint32(buf[off:], uint32(f.X))
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(f.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], uint32(f.Magnitude))
	}

	featureBlock := models.MaxPoolFeatures * models.FeatureEncodedSize
	copy(buf[featureBlock:], pool.PixelSample)
	copy(buf[featureBlock+models.PixelSampleSize:], pool.OSEntropy)

	return buf, nil
}
