package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akravets/invoice-qc/internal/core/usecase"
)

var (
	validateInput  string
	validateReport string
	validateXLSX   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate invoices from a JSON file",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "input JSON file with extracted invoices (required)")
	validateCmd.Flags().StringVar(&validateReport, "report", "", "output JSON file for the validation report")
	validateCmd.Flags().StringVar(&validateXLSX, "xlsx", "", "output XLSX workbook for the validation report")
	_ = validateCmd.MarkFlagRequired("input")
	validateCmd.SilenceUsage = true
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Loading invoices from %s...\n", validateInput)
	invoices, err := loadInvoices(validateInput)
	if err != nil {
		return err
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	fmt.Printf("Validating %d invoices...\n", len(invoices))
	summary, err := usecase.NewValidateInvoicesUseCase(engine).ValidateAll(invoices)
	if err != nil {
		return err
	}

	printSummary(summary)

	if validateReport != "" {
		if err := writeJSONFile(validateReport, summary); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", validateReport)
	}
	if validateXLSX != "" {
		if err := writeXLSXReport(validateXLSX, summary); err != nil {
			return err
		}
		fmt.Printf("Workbook saved to %s\n", validateXLSX)
	}

	if summary.InvalidInvoices > 0 {
		return fmt.Errorf("%d of %d invoices failed validation", summary.InvalidInvoices, summary.TotalInvoices)
	}
	return nil
}
