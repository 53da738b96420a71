package crypto

import (
	"fmt"

	"github.com/entropyseed/seedseal/internal/models"
)

// Pack assembles the at-rest container: salt(16) || nonce(12) || sealed.
// The layout is positional and fixed; it is what a package must look
// like byte-for-byte to interoperate.
func Pack(salt, nonce, sealed []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, ErrInvalidSalt
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}

	packaged := make([]byte, 0, SaltSize+NonceSize+len(sealed))
	packaged = append(packaged, salt...)
	packaged = append(packaged, nonce...)
	packaged = append(packaged, sealed...)
	return packaged, nil
}

// Unpack splits a container into its positional fields. The returned
// slices alias blob.
//
// Only the minimum length is checked here; the authenticity of the
// split fields is established by a later successful Open, nothing else.
func Unpack(blob []byte) (salt, nonce, sealed []byte, err error) {
	if len(blob) < MinPackageSize {
		return nil, nil, nil, fmt.Errorf("%w: %d bytes, need at least %d",
			models.ErrMalformedPackage, len(blob), MinPackageSize)
	}

	salt = blob[:SaltSize]
	nonce = blob[SaltSize : SaltSize+NonceSize]
	sealed = blob[SaltSize+NonceSize:]
	return salt, nonce, sealed, nil
}
