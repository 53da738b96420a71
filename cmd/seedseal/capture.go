package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entropyseed/seedseal/internal/entropy"
	"github.com/entropyseed/seedseal/internal/state"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a measurement pool and run an ephemeral session",
	Long: `Capture pulls one measurement pool from the entropy source, derives
a session key from it, seals a phrase, then opens its own output to
verify the round trip.

The pool mixes OS randomness into the seed, so the key can never be
re-derived after this run: anything sealed here is readable only within
this session. Stored capture packages are kept for audit, not recovery.`,
	Example: `  seedseal capture
  seedseal capture --phrase "correct horse" --save demo`,
	RunE: runCapture,
}

var (
	capturePhrase string
	captureAAD    string
	captureSave   string
	captureAudit  bool
)

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&capturePhrase, "phrase", "",
		"Phrase to seal (will prompt if not provided)")
	captureCmd.Flags().StringVarP(&captureAAD, "aad", "a", "",
		"Associated data bound to the package")
	captureCmd.Flags().StringVar(&captureSave, "save", "",
		"Store the sealed package under this label")
	captureCmd.Flags().BoolVar(&captureAudit, "audit", true,
		"Write the pool sample to the audit artifact")
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	source := entropy.NewNoiseSource()
	pool, err := source.Capture(ctx)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	printInfo("Captured pool: %d features", pool.FeatureCount())

	if captureAudit && cfg.Entropy.AuditFile != "" {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		if err := entropy.WriteAudit(cfg.Entropy.AuditFile, pool); err != nil {
			printWarning("Audit artifact not written: %v", err)
		} else {
			logger.WithField("path", cfg.Entropy.AuditFile).Debug("Wrote audit artifact")
		}
	}

	session, err := sealSvc.NewSession(pool)
	if err != nil {
		return err
	}
	defer session.Close()

	phrase := capturePhrase
	if phrase == "" {
		phrase, err = promptSecret("Phrase to seal: ")
		if err != nil {
			return err
		}
	}

	var aad []byte
	if captureAAD != "" {
		aad = []byte(captureAAD)
	}

	packaged, err := session.Seal([]byte(phrase), aad)
	if err != nil {
		return err
	}
	encoded := sealSvc.EncodePackage(packaged)

	// Verify our own output while the key still exists.
	recovered, err := session.Open(packaged, aad)
	if err != nil {
		return fmt.Errorf("verify sealed package: %w", err)
	}
	if string(recovered) != phrase {
		return fmt.Errorf("verify sealed package: plaintext mismatch")
	}

	if captureSave != "" {
		store, err := openStore()
		if err != nil {
			return err
		}

		rec := &state.PackageRecord{
			Label:    captureSave,
			Variant:  "pool",
			Encoding: cfg.Seal.Encoding,
			Package:  encoded,
		}
		if err := store.Save(rec); err != nil {
			return err
		}
		printWarning("Stored pool package %q: it cannot be decrypted after this run", captureSave)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"package":     encoded,
			"encoding":    cfg.Seal.Encoding,
			"features":    pool.FeatureCount(),
			"captured_at": pool.CapturedAt,
			"verified":    true,
		})
		return nil
	}

	printSuccess("Sealed and verified %d bytes", len(phrase))
	fmt.Println(encoded)
	return nil
}
