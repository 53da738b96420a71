// Package state persists packaged ciphertexts under caller-chosen
// labels. Persistence is optional: a package is self-contained and the
// store never holds seed material or keys, only the opaque text-encoded
// container.
package state

import (
	"fmt"
	"regexp"
	"time"

	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/models"
)

// PackageRecord is one stored package.
type PackageRecord struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Variant  string `json:"variant"`  // coords or pool
	Encoding string `json:"encoding"` // hex or base64
	Package  string `json:"package"`  // text-encoded container

	CreatedAt time.Time `json:"created_at"`
}

// Store manages package persistence. Save upserts by label.
type Store interface {
	Save(rec *PackageRecord) error
	Load(label string) (*PackageRecord, error)
	List() ([]PackageRecord, error)
	Delete(label string) error
	Close() error
}

// New creates a store for the configured backend.
func New(backend, path string, logger *events.Logger) (Store, error) {
	switch backend {
	case "sqlite":
		return NewSQLiteStore(path, logger)
	case "json":
		return NewJSONStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

var labelPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// validateLabel keeps labels safe to use as file names and report in
// logs.
func validateLabel(label string) error {
	if !labelPattern.MatchString(label) || len(label) > 128 {
		return &models.StoreError{
			Label: label,
			Op:    "validate",
			Err:   fmt.Errorf("invalid label"),
		}
	}
	return nil
}
