package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entropyseed/seedseal/internal/config"
	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/services/seal"
	"github.com/entropyseed/seedseal/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "seedseal",
	Short: "Seed-derived authenticated encryption",
	Long: `Seedseal derives AES-256-GCM keys from seed material - ordered
coordinate pairs, or an ephemeral measurement pool captured from an
entropy source - and seals short messages into self-contained packages
(salt || nonce || ciphertext+tag).

Coordinate order and precision are part of the key: the same points in
a different order, or a different precision, will not decrypt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if packageStore != nil {
			_ = packageStore.Close()
		}
	},
}

var (
	cfgFile    string
	logLevel   string
	jsonOutput bool

	cfg          *config.Config
	logger       *events.Logger
	sealSvc      *seal.Service
	packageStore state.Store
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./seedseal.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON")
}

func initApp() error {
	var err error
	cfg, err = config.NewLoader(cfgFile).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err = events.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	sealSvc = seal.NewService(cfg.Seal.Precision, cfg.Seal.Encoding, logger)
	return nil
}

// openStore lazily creates the package store; commands that never
// persist anything leave the store directory untouched.
func openStore() (state.Store, error) {
	if packageStore != nil {
		return packageStore, nil
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := state.New(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open package store: %w", err)
	}

	packageStore = store
	return store, nil
}
