// Package seal orchestrates seed-derived encryption: it wires the
// canonical encoder, entropy mixer, key deriver, AEAD codec, and
// packager into single-pass encrypt/decrypt operations, and owns the
// ephemeral sessions used for pool-derived keys.
package seal

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/models"
)

// Service performs coordinate-seeded encryption. It holds configuration
// only; every call derives its own key and discards it, so concurrent
// calls are independent.
type Service struct {
	precision int
	encoding  string
	logger    *events.Logger
}

// NewService creates a seal service. precision is the coordinate
// encoding precision; encoding names the text interchange ("hex" or
// "base64") applied by EncodePackage/DecodePackage.
func NewService(precision int, encoding string, logger *events.Logger) *Service {
	return &Service{
		precision: precision,
		encoding:  encoding,
		logger:    logger.WithField("component", "seal_service"),
	}
}

// Encrypt derives a key from the coordinate seed and a fresh salt,
// seals plaintext under a fresh nonce, and returns the self-contained
// package salt || nonce || ciphertext+tag.
//
// Coordinate order is part of the derivation secret; the same points in
// a different order will not decrypt this package.
func (s *Service) Encrypt(seed models.CoordinateSeed, plaintext, aad []byte) ([]byte, error) {
	canonical, err := crypto.CoordinateBytes(seed, s.precision)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodeSeed, Op: "seal", Variant: "coords", Err: err}
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	key, err := crypto.DeriveKey(crypto.MixSeed(canonical, salt), []byte(crypto.CoordinateKeyInfo), crypto.KeySize)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	sealed, err := crypto.Seal(key, nonce, plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	packaged, err := crypto.Pack(salt, nonce, sealed)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"pairs":       len(seed),
		"plaintext_b": len(plaintext),
		"package_b":   len(packaged),
		"has_aad":     len(aad) > 0,
	}).Debug("Sealed package")

	return packaged, nil
}

// Decrypt re-derives the key from the coordinate seed and the salt
// carried in the package, then verifies and opens it. Any mismatch in
// seed, precision, associated data, or package contents surfaces
// uniformly as ErrAuthenticationFailed.
func (s *Service) Decrypt(seed models.CoordinateSeed, packaged, aad []byte) ([]byte, error) {
	salt, nonce, sealed, err := crypto.Unpack(packaged)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodePackage, Op: "open", Variant: "coords", Err: err}
	}

	canonical, err := crypto.CoordinateBytes(seed, s.precision)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodeSeed, Op: "open", Variant: "coords", Err: err}
	}

	key, err := crypto.DeriveKey(crypto.MixSeed(canonical, salt), []byte(crypto.CoordinateKeyInfo), crypto.KeySize)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	plaintext, err := crypto.Open(key, nonce, sealed, aad)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodeAuth, Op: "open", Variant: "coords", Err: err}
	}

	return plaintext, nil
}

// EncodePackage renders a package as text using the configured
// interchange encoding.
func (s *Service) EncodePackage(packaged []byte) string {
	if s.encoding == "base64" {
		return base64.StdEncoding.EncodeToString(packaged)
	}
	return hex.EncodeToString(packaged)
}

// DecodePackage reverses EncodePackage. The same deployment-wide
// encoding must be used on both sides of a round trip.
func (s *Service) DecodePackage(text string) ([]byte, error) {
	return s.DecodePackageWith(text, s.encoding)
}

// DecodePackageWith decodes a package whose encoding is known from
// context, such as a stored record that names the encoding it was
// written with.
func (s *Service) DecodePackageWith(text, encoding string) ([]byte, error) {
	var (
		packaged []byte
		err      error
	)
	if encoding == "base64" {
		packaged, err = base64.StdEncoding.DecodeString(text)
	} else {
		packaged, err = hex.DecodeString(text)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s package: %w", encoding, err)
	}
	return packaged, nil
}
