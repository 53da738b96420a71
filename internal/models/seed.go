package models

import "time"

// Pool geometry. The canonical pool encoding is constant-length so the
// ciphertext never leaks how many features a capture actually produced.
const (
	// MaxPoolFeatures is the number of ranked features encoded per pool.
	MaxPoolFeatures = 128

	// FeatureEncodedSize is the encoded width of one feature (three int32).
	FeatureEncodedSize = 12

	// PixelSampleSize is the fixed length of the ancillary sample block.
	PixelSampleSize = 64

	// OSEntropySize is the length of the OS randomness appended to a pool.
	OSEntropySize = 32

	// PoolCanonicalSize is the total canonical encoding length of a pool.
	PoolCanonicalSize = MaxPoolFeatures*FeatureEncodedSize + PixelSampleSize + OSEntropySize

	// AuditSampleSize caps the pool prefix written to the audit artifact.
	AuditSampleSize = 2048
)

// Coordinate is a single 2-D point of coordinate seed material.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CoordinateSeed is an ordered sequence of coordinate pairs.
//
// Order is part of the derivation secret: two seeds holding the same
// points in different order derive different keys. Callers must not
// treat set equality as sufficient for decryption.
type CoordinateSeed []Coordinate

// Feature is one ranked measurement from an entropy capture: a position
// and a scalar magnitude used as its ranking weight.
type Feature struct {
	X         int32 `json:"x"`
	Y         int32 `json:"y"`
	Magnitude int32 `json:"magnitude"`
}

// MeasurementPool is the seed material delivered by one capture event.
//
// A pool is inherently fresh: the OS entropy block makes two captures of
// the same scene encode differently, so pool-derived keys exist only for
// the session that captured them and can never be re-derived later.
type MeasurementPool struct {
	Features    []Feature `json:"features"`
	PixelSample []byte    `json:"pixel_sample"`
	OSEntropy   []byte    `json:"-"`

	CapturedAt time.Time `json:"captured_at"`
}

// FeatureCount reports how many features the capture produced before
// truncation or padding.
func (p *MeasurementPool) FeatureCount() int {
	if p == nil {
		return 0
	}
	return len(p.Features)
}
