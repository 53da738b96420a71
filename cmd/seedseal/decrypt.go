package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entropyseed/seedseal/internal/models"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a package with its coordinate seed",
	Long: `Decrypt re-derives the key from the coordinate seed and the salt
carried inside the package. A wrong seed, wrong order, wrong associated
data, or a tampered package all fail the same way; the tool does not
say which.`,
	Example: `  seedseal decrypt --coords "12.971599,77.594566;12.9716,77.59456" --aad header --package <text>
  seedseal decrypt --coords "48.8584,2.2945" --load eiffel`,
	RunE: runDecrypt,
}

var (
	decryptCoords  string
	decryptPackage string
	decryptAAD     string
	decryptLoad    string
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptCoords, "coords", "c", "",
		"Ordered coordinate pairs \"x1,y1;x2,y2\" (required)")
	decryptCmd.Flags().StringVarP(&decryptPackage, "package", "p", "",
		"Text-encoded package to decrypt")
	decryptCmd.Flags().StringVarP(&decryptAAD, "aad", "a", "",
		"Associated data the package was bound to")
	decryptCmd.Flags().StringVar(&decryptLoad, "load", "",
		"Load the package from the store by label")

	_ = decryptCmd.MarkFlagRequired("coords")
	decryptCmd.MarkFlagsMutuallyExclusive("package", "load")
	decryptCmd.MarkFlagsOneRequired("package", "load")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	seed, err := parseCoordinates(decryptCoords)
	if err != nil {
		return fmt.Errorf("parse coordinates: %w", err)
	}

	var packaged []byte
	if decryptLoad != "" {
		store, err := openStore()
		if err != nil {
			return err
		}

		rec, err := store.Load(decryptLoad)
		if err != nil {
			return err
		}
		// Stored records name their own encoding; honor it even if
		// the deployment default has since changed.
		packaged, err = sealSvc.DecodePackageWith(rec.Package, rec.Encoding)
		if err != nil {
			return err
		}
	} else {
		packaged, err = sealSvc.DecodePackage(decryptPackage)
		if err != nil {
			return err
		}
	}

	var aad []byte
	if decryptAAD != "" {
		aad = []byte(decryptAAD)
	}

	plaintext, err := sealSvc.Decrypt(seed, packaged, aad)
	if err != nil {
		if errors.Is(err, models.ErrMalformedPackage) {
			return models.ErrMalformedPackage
		}
		// One error for every authentication-related cause: the
		// caller learns nothing about why it failed.
		return models.ErrAuthenticationFailed
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"plaintext": string(plaintext),
		})
		return nil
	}

	fmt.Println(string(plaintext))
	return nil
}
