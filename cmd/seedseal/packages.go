package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List stored packages",
	RunE:  runPackagesList,
}

var packagesDeleteCmd = &cobra.Command{
	Use:   "delete <label>",
	Short: "Delete a stored package",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackagesDelete,
}

func init() {
	rootCmd.AddCommand(packagesCmd)
	packagesCmd.AddCommand(packagesDeleteCmd)
}

func runPackagesList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	records, err := store.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(records)
		return nil
	}

	if len(records) == 0 {
		printInfo("No stored packages")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tVARIANT\tENCODING\tSIZE\tCREATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			rec.Label, rec.Variant, rec.Encoding, len(rec.Package),
			rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runPackagesDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	label := args[0]
	if err := store.Delete(label); err != nil {
		return err
	}

	printSuccess("Deleted package %q", label)
	return nil
}
