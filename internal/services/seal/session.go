package seal

import (
	"fmt"
	"sync"
	"time"

	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/models"
)

// Session holds the key derived from one measurement pool for the life
// of one capture. Pool seeds are never reproducible, so the key exists
// only in this process; once the session is closed (or the process
// exits) packages sealed by it are permanently undecryptable. That is
// the intended ephemeral-key pattern, not a defect.
type Session struct {
	mu         sync.Mutex
	key        []byte
	capturedAt time.Time
}

// NewSession encodes the pool, derives the session key, and wipes the
// intermediate material. The pool's salt-free mixing is deliberate: the
// OS entropy block already guarantees per-capture freshness.
func (s *Service) NewSession(pool *models.MeasurementPool) (*Session, error) {
	canonical, err := crypto.PoolBytes(pool)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodeSeed, Op: "seal", Variant: "pool", Err: err}
	}

	key, err := crypto.DeriveKey(crypto.MixSeed(canonical, nil), []byte(crypto.PoolKeyInfo), crypto.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	for i := range canonical {
		canonical[i] = 0
	}

	s.logger.WithFields(map[string]interface{}{
		"features":    pool.FeatureCount(),
		"captured_at": pool.CapturedAt,
	}).Info("Session key derived from capture")

	return &Session{
		key:        key,
		capturedAt: pool.CapturedAt,
	}, nil
}

// CapturedAt reports when the session's pool was captured.
func (sess *Session) CapturedAt() time.Time {
	return sess.capturedAt
}

// Seal encrypts plaintext under the session key with a fresh nonce.
// The package carries a fresh random salt purely for container
// uniformity with coordinate-sealed packages; pool key derivation does
// not consume it and Open ignores it.
func (sess *Session) Seal(plaintext, aad []byte) ([]byte, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.key == nil {
		return nil, &models.SealError{Code: models.ErrCodeSession, Op: "seal", Variant: "pool", Err: models.ErrSessionClosed}
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	sealed, err := crypto.Seal(sess.key, nonce, plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	return crypto.Pack(salt, nonce, sealed)
}

// Open verifies and decrypts a package sealed by this session.
func (sess *Session) Open(packaged, aad []byte) ([]byte, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.key == nil {
		return nil, &models.SealError{Code: models.ErrCodeSession, Op: "open", Variant: "pool", Err: models.ErrSessionClosed}
	}

	_, nonce, sealed, err := crypto.Unpack(packaged)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodePackage, Op: "open", Variant: "pool", Err: err}
	}

	plaintext, err := crypto.Open(sess.key, nonce, sealed, aad)
	if err != nil {
		return nil, &models.SealError{Code: models.ErrCodeAuth, Op: "open", Variant: "pool", Err: err}
	}

	return plaintext, nil
}

// Close wipes the session key. Packages sealed by this session become
// permanently undecryptable.
func (sess *Session) Close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := range sess.key {
		sess.key[i] = 0
	}
	sess.key = nil
}
