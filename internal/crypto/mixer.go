package crypto

import "crypto/sha256"

// MixSeed combines canonical seed bytes with a per-operation salt into
// the fixed-length intermediate secret: SHA-256(canonical || salt).
//
// salt may be nil for seed material that is already fresh per capture
// (measurement pools). Pure function; deterministic for equal inputs.
func MixSeed(canonical, salt []byte) []byte {
	h := sha256.New()
	h.Write(canonical)
	if len(salt) > 0 {
		h.Write(salt)
	}
	return h.Sum(nil)
}
