package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/models"
)

// JSONStore keeps one JSON file per label under a base directory.
type JSONStore struct {
	baseDir string
	logger  *events.Logger

	mu sync.RWMutex
}

// NewJSONStore creates a file-based package store.
func NewJSONStore(baseDir string, logger *events.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	return &JSONStore{
		baseDir: baseDir,
		logger:  logger.WithField("component", "json_package_store"),
	}, nil
}

// Save upserts a record, writing atomically via a temp file.
func (s *JSONStore) Save(rec *PackageRecord) error {
	if err := validateLabel(rec.Label); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return &models.StoreError{Label: rec.Label, Op: "save", Err: err}
	}

	path := s.recordPath(rec.Label)
	tempPath := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return &models.StoreError{Label: rec.Label, Op: "save", Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return &models.StoreError{Label: rec.Label, Op: "save", Err: err}
	}

	s.logger.WithField("label", rec.Label).Debug("Saved package record")
	return nil
}

// Load reads a record by label.
func (s *JSONStore) Load(label string) (*PackageRecord, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(label))
	if os.IsNotExist(err) {
		return nil, &models.StoreError{Label: label, Op: "load", Err: models.ErrPackageNotFound}
	}
	if err != nil {
		return nil, &models.StoreError{Label: label, Op: "load", Err: err}
	}

	var rec PackageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &models.StoreError{Label: label, Op: "load", Err: fmt.Errorf("corrupt record: %w", err)}
	}

	return &rec, nil
}

// List returns all records sorted by label.
func (s *JSONStore) List() ([]PackageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}

	var records []PackageRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			return nil, &models.StoreError{Op: "list", Err: err}
		}

		var rec PackageRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.WithField("file", entry.Name()).Warn("Skipping corrupt record")
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Label < records[j].Label })
	return records, nil
}

// Delete removes a record by label.
func (s *JSONStore) Delete(label string) error {
	if err := validateLabel(label); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(label))
	if os.IsNotExist(err) {
		return &models.StoreError{Label: label, Op: "delete", Err: models.ErrPackageNotFound}
	}
	if err != nil {
		return &models.StoreError{Label: label, Op: "delete", Err: err}
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) recordPath(label string) string {
	return filepath.Join(s.baseDir, label+".json")
}
