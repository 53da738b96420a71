package entropy

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entropyseed/seedseal/internal/models"
)

// WriteAudit persists the pool's audit sample atomically, replacing any
// previous artifact at path. Written 0600: the sample reveals the seed
// material.
func WriteAudit(path string, pool *models.MeasurementPool) error {
	sample, err := AuditSample(pool)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}

	tempPath := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tempPath, sample, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
