package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	extractDir    string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract invoices from a directory of documents",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractDir, "dir", "", "directory containing invoice documents (required)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "output JSON file for extracted invoices")
	_ = extractCmd.MarkFlagRequired("dir")
	extractCmd.SilenceUsage = true
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	fmt.Printf("Extracting invoices from %s...\n", extractDir)
	invoices, err := extractFromDir(cmd.Context(), extractDir)
	if err != nil {
		return err
	}
	fmt.Printf("Extracted %d invoices\n", len(invoices))

	if extractOutput != "" {
		if err := writeJSONFile(extractOutput, invoices); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", extractOutput)
	}
	return nil
}
