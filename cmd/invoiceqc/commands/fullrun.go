package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akravets/invoice-qc/internal/core/usecase"
)

var (
	fullRunDir    string
	fullRunReport string
	fullRunXLSX   string
)

var fullRunCmd = &cobra.Command{
	Use:   "full-run",
	Short: "Extract and validate invoices end-to-end",
	RunE:  runFullRun,
}

func init() {
	fullRunCmd.Flags().StringVar(&fullRunDir, "dir", "", "directory containing invoice documents (required)")
	fullRunCmd.Flags().StringVar(&fullRunReport, "report", "", "output JSON file for the validation report")
	fullRunCmd.Flags().StringVar(&fullRunXLSX, "xlsx", "", "output XLSX workbook for the validation report")
	_ = fullRunCmd.MarkFlagRequired("dir")
	fullRunCmd.SilenceUsage = true
	rootCmd.AddCommand(fullRunCmd)
}

func runFullRun(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting full-run on %s...\n", fullRunDir)

	fmt.Println("\n[1/2] Extracting invoices...")
	invoices, err := extractFromDir(cmd.Context(), fullRunDir)
	if err != nil {
		return err
	}
	fmt.Printf("Extracted %d invoices\n", len(invoices))

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Println("\n[2/2] Validating invoices...")
	summary, err := usecase.NewValidateInvoicesUseCase(engine).ValidateAll(invoices)
	if err != nil {
		return err
	}

	printSummary(summary)

	if fullRunReport != "" {
		if err := writeJSONFile(fullRunReport, summary); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", fullRunReport)
	}
	if fullRunXLSX != "" {
		if err := writeXLSXReport(fullRunXLSX, summary); err != nil {
			return err
		}
		fmt.Printf("Workbook saved to %s\n", fullRunXLSX)
	}

	if summary.InvalidInvoices > 0 {
		return fmt.Errorf("%d of %d invoices failed validation", summary.InvalidInvoices, summary.TotalInvoices)
	}
	return nil
}
