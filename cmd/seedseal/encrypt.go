package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entropyseed/seedseal/internal/state"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a message under a coordinate seed",
	Long: `Encrypt derives a fresh key from the coordinate seed and a random
salt, seals the message with AES-256-GCM, and prints the text-encoded
package. Decryption needs the exact same coordinates, in the same
order, at the same precision.`,
	Example: `  seedseal encrypt --coords "12.971599,77.594566;12.9716,77.59456" --aad header --text hello
  seedseal encrypt --coords "48.8584,2.2945" --save eiffel`,
	RunE: runEncrypt,
}

var (
	encryptCoords string
	encryptText   string
	encryptAAD    string
	encryptSave   string
)

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVarP(&encryptCoords, "coords", "c", "",
		"Ordered coordinate pairs \"x1,y1;x2,y2\" (required)")
	encryptCmd.Flags().StringVarP(&encryptText, "text", "t", "",
		"Message to encrypt (will prompt if not provided)")
	encryptCmd.Flags().StringVarP(&encryptAAD, "aad", "a", "",
		"Associated data bound to the package")
	encryptCmd.Flags().StringVar(&encryptSave, "save", "",
		"Store the package under this label")

	_ = encryptCmd.MarkFlagRequired("coords")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	seed, err := parseCoordinates(encryptCoords)
	if err != nil {
		return fmt.Errorf("parse coordinates: %w", err)
	}

	text := encryptText
	if text == "" {
		text, err = promptSecret("Message to encrypt: ")
		if err != nil {
			return err
		}
	}

	var aad []byte
	if encryptAAD != "" {
		aad = []byte(encryptAAD)
	}

	packaged, err := sealSvc.Encrypt(seed, []byte(text), aad)
	if err != nil {
		logger.WithError(err).Error("Encryption failed")
		return err
	}

	encoded := sealSvc.EncodePackage(packaged)

	if encryptSave != "" {
		store, err := openStore()
		if err != nil {
			return err
		}

		rec := &state.PackageRecord{
			Label:    encryptSave,
			Variant:  "coords",
			Encoding: cfg.Seal.Encoding,
			Package:  encoded,
		}
		if err := store.Save(rec); err != nil {
			return err
		}
		printInfo("Stored package as %q", encryptSave)
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"package":  encoded,
			"encoding": cfg.Seal.Encoding,
			"bytes":    len(packaged),
			"label":    encryptSave,
		})
		return nil
	}

	printSuccess("Encrypted %d bytes into a %d-byte package", len(text), len(packaged))
	fmt.Println(encoded)
	return nil
}
