package models

import (
	"errors"
	"fmt"
)

// Error codes for structured error handling.
const (
	ErrCodeSeed    = "SEED_ERROR"
	ErrCodePackage = "PACKAGE_ERROR"
	ErrCodeAuth    = "AUTH_ERROR"
	ErrCodeSession = "SESSION_ERROR"
	ErrCodeStore   = "STORE_ERROR"
	ErrCodeConfig  = "CONFIG_ERROR"
)

// Sentinel errors
var (
	// ErrInvalidSeed reports unusable seed material: a non-finite
	// coordinate component, an empty coordinate list, or an empty pool.
	ErrInvalidSeed = errors.New("invalid seed material")

	// ErrMalformedPackage reports a packaged container shorter than the
	// minimum valid layout (salt + nonce + tag).
	ErrMalformedPackage = errors.New("malformed package")

	// ErrAuthenticationFailed reports an AEAD tag mismatch. It covers a
	// wrong seed, wrong associated data, and tampering alike; callers
	// must not distinguish the cause to avoid oracle leakage.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionClosed reports use of a capture session after Close.
	ErrSessionClosed = errors.New("session closed")

	ErrPackageNotFound = errors.New("package not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// SealError wraps a failure in one encrypt or decrypt pass with the
// operation and seed variant that produced it.
type SealError struct {
	Code    string
	Op      string // "seal" or "open"
	Variant string // "coords" or "pool"
	Err     error
}

func (e *SealError) Error() string {
	return fmt.Sprintf("%s [%s]: %s seed: %v", e.Op, e.Code, e.Variant, e.Err)
}

func (e *SealError) Unwrap() error {
	return e.Err
}

// StoreError wraps a persistence failure with the record label involved.
type StoreError struct {
	Label string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("store %s: %s: %v", e.Op, e.Label, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
