package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/entropyseed/seedseal/internal/crypto"
	"github.com/entropyseed/seedseal/internal/models"
)

// Encoding names accepted for the textual interchange of packages.
// A deployment picks one and applies it consistently; mixing encodings
// across an encrypt/decrypt round trip fails to decode.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Config holds all application configuration.
type Config struct {
	// Seal behavior
	Seal SealConfig `json:"seal" mapstructure:"seal"`

	// Entropy capture
	Entropy EntropyConfig `json:"entropy" mapstructure:"entropy"`

	// Package persistence
	Store StoreConfig `json:"store" mapstructure:"store"`

	// Logging
	Log LogConfig `json:"log" mapstructure:"log"`
}

// SealConfig controls key derivation and package interchange.
type SealConfig struct {
	// Precision is the decimal precision for coordinate encoding.
	// It is part of the derivation: both sides of a round trip must
	// use the same value.
	Precision int `json:"precision" mapstructure:"precision"`

	// Encoding is the text encoding for packaged containers.
	Encoding string `json:"encoding" mapstructure:"encoding"`
}

// EntropyConfig controls measurement pool capture.
type EntropyConfig struct {
	// AuditFile receives the first 2048 bytes of each captured pool.
	// Diagnostic only; never required for decryption. Empty disables.
	AuditFile string `json:"audit_file" mapstructure:"audit_file"`
}

// StoreConfig controls optional persistence of packaged containers.
type StoreConfig struct {
	Backend string `json:"backend" mapstructure:"backend"` // sqlite, json
	Path    string `json:"path" mapstructure:"path"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // text, json
	File   string `json:"file" mapstructure:"file"`     // empty = stdout
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := ".seedseal"

	return &Config{
		Seal: SealConfig{
			Precision: crypto.DefaultPrecision,
			Encoding:  EncodingHex,
		},
		Entropy: EntropyConfig{
			AuditFile: filepath.Join(dataDir, "entropy_pool.bin"),
		},
		Store: StoreConfig{
			Backend: "json",
			Path:    filepath.Join(dataDir, "packages"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks configuration validity. Failures wrap
// models.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Seal.Precision < 0 || c.Seal.Precision > 12 {
		return fmt.Errorf("%w: seal.precision must be in [0, 12], got %d",
			models.ErrInvalidConfig, c.Seal.Precision)
	}

	if c.Seal.Encoding != EncodingHex && c.Seal.Encoding != EncodingBase64 {
		return fmt.Errorf("%w: invalid seal.encoding: %s", models.ErrInvalidConfig, c.Seal.Encoding)
	}

	switch c.Store.Backend {
	case "sqlite", "json":
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required", models.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: invalid store.backend: %s", models.ErrInvalidConfig, c.Store.Backend)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("%w: invalid log level: %s", models.ErrInvalidConfig, c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("%w: invalid log format: %s", models.ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	var dirs []string

	if c.Store.Path != "" {
		// sqlite paths name the database file, json paths a directory.
		if c.Store.Backend == "sqlite" {
			dirs = append(dirs, filepath.Dir(c.Store.Path))
		} else {
			dirs = append(dirs, c.Store.Path)
		}
	}
	if c.Entropy.AuditFile != "" {
		dirs = append(dirs, filepath.Dir(c.Entropy.AuditFile))
	}
	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
