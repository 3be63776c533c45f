package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/extract"
	"github.com/akravets/invoice-qc/internal/core/usecase"
	"github.com/akravets/invoice-qc/internal/infrastructure/export/xlsx"
	"github.com/akravets/invoice-qc/internal/infrastructure/storage/localfs"
	"github.com/akravets/invoice-qc/internal/infrastructure/textsource"
)

// extractFromDir runs batch extraction over every file in dir.
func extractFromDir(ctx context.Context, dir string) ([]domain.Invoice, error) {
	storage, err := localfs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open document directory: %w", err)
	}

	uc := usecase.NewExtractInvoicesUseCase(textsource.New(), extract.NewPipeline(), workers)
	return uc.ExtractFromStorage(ctx, storage)
}

func loadInvoices(path string) ([]domain.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	var invoices []domain.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}
	return invoices, nil
}

func writeJSONFile(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

func writeXLSXReport(path string, summary domain.ValidationSummary) error {
	data, err := xlsx.NewExporter(nil).Export(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func printSummary(summary domain.ValidationSummary) {
	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("VALIDATION SUMMARY")
	fmt.Println(banner)
	fmt.Printf("Total Invoices:   %d\n", summary.TotalInvoices)
	fmt.Printf("Valid Invoices:   %d\n", summary.ValidInvoices)
	fmt.Printf("Invalid Invoices: %d\n", summary.InvalidInvoices)

	if len(summary.ErrorCounts) > 0 {
		fmt.Println("\nTop Error Types:")
		type codeCount struct {
			code  string
			count int
		}
		counts := make([]codeCount, 0, len(summary.ErrorCounts))
		for code, count := range summary.ErrorCounts {
			counts = append(counts, codeCount{code, count})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].code < counts[j].code
		})
		if len(counts) > 10 {
			counts = counts[:10]
		}
		for _, cc := range counts {
			fmt.Printf("  - %s: %d\n", cc.code, cc.count)
		}
	}

	fmt.Println(banner + "\n")
}
