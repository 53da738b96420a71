package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/models"
)

// SQLiteStore implements SQLite-based package storage.
type SQLiteStore struct {
	db     *sql.DB
	logger *events.Logger
}

// CurrentSchemaVersion for migrations.
const CurrentSchemaVersion = 1

// NewSQLiteStore creates a SQLite package store.
func NewSQLiteStore(dbPath string, logger *events.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.WithField("component", "sqlite_package_store"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS packages (
        id TEXT PRIMARY KEY,
        label TEXT NOT NULL UNIQUE,
        variant TEXT NOT NULL,
        encoding TEXT NOT NULL,
        package TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_packages_label ON packages(label);

    CREATE TABLE IF NOT EXISTS schema_info (
        version INTEGER PRIMARY KEY
    );

    INSERT OR IGNORE INTO schema_info (version) VALUES (?);
    `

	if _, err := s.db.Exec(schema, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Save upserts a record by label.
func (s *SQLiteStore) Save(rec *PackageRecord) error {
	if err := validateLabel(rec.Label); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
        INSERT INTO packages (id, label, variant, encoding, package, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(label) DO UPDATE SET
            variant = excluded.variant,
            encoding = excluded.encoding,
            package = excluded.package,
            created_at = excluded.created_at`,
		rec.ID, rec.Label, rec.Variant, rec.Encoding, rec.Package, rec.CreatedAt)
	if err != nil {
		return &models.StoreError{Label: rec.Label, Op: "save", Err: err}
	}

	s.logger.WithField("label", rec.Label).Debug("Saved package record")
	return nil
}

// Load reads a record by label.
func (s *SQLiteStore) Load(label string) (*PackageRecord, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	var rec PackageRecord
	err := s.db.QueryRow(`
        SELECT id, label, variant, encoding, package, created_at
        FROM packages WHERE label = ?`, label).Scan(
		&rec.ID, &rec.Label, &rec.Variant, &rec.Encoding, &rec.Package, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.StoreError{Label: label, Op: "load", Err: models.ErrPackageNotFound}
	}
	if err != nil {
		return nil, &models.StoreError{Label: label, Op: "load", Err: err}
	}

	return &rec, nil
}

// List returns all records sorted by label.
func (s *SQLiteStore) List() ([]PackageRecord, error) {
	rows, err := s.db.Query(`
        SELECT id, label, variant, encoding, package, created_at
        FROM packages ORDER BY label`)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var records []PackageRecord
	for rows.Next() {
		var rec PackageRecord
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Variant, &rec.Encoding, &rec.Package, &rec.CreatedAt); err != nil {
			return nil, &models.StoreError{Op: "list", Err: err}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	return records, nil
}

// Delete removes a record by label.
func (s *SQLiteStore) Delete(label string) error {
	if err := validateLabel(label); err != nil {
		return err
	}

	res, err := s.db.Exec(`DELETE FROM packages WHERE label = ?`, label)
	if err != nil {
		return &models.StoreError{Label: label, Op: "delete", Err: err}
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return &models.StoreError{Label: label, Op: "delete", Err: models.ErrPackageNotFound}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
