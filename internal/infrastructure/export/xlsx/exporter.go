package xlsx

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// Exporter renders a validation summary into an XLSX workbook with a
// Results sheet (one row per invoice) and an Error Counts sheet.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

func (e *Exporter) Export(summary domain.ValidationSummary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const resultsSheet = "Results"
	if index, _ := f.GetSheetIndex(resultsSheet); index == -1 {
		if _, err := f.NewSheet(resultsSheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(resultsSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Invoice ID", "Valid", "Error Count", "Errors"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(resultsSheet, cell, h)
	}

	row := 2
	for _, result := range summary.Results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(resultsSheet, cell, v)
		}
		write(1, result.InvoiceID)
		write(2, result.IsValid)
		write(3, len(result.Errors))
		write(4, strings.Join(result.Errors, "; "))
		row++
	}

	_ = f.SetColWidth(resultsSheet, "A", "A", 18)
	_ = f.SetColWidth(resultsSheet, "B", "C", 12)
	_ = f.SetColWidth(resultsSheet, "D", "D", 80)

	const countsSheet = "Error Counts"
	if _, err := f.NewSheet(countsSheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(countsSheet, "A1", "Error Code")
	_ = f.SetCellValue(countsSheet, "B1", "Count")

	codes := make([]string, 0, len(summary.ErrorCounts))
	for code := range summary.ErrorCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for i, code := range codes {
		_ = f.SetCellValue(countsSheet, fmt.Sprintf("A%d", i+2), code)
		_ = f.SetCellValue(countsSheet, fmt.Sprintf("B%d", i+2), summary.ErrorCounts[code])
	}
	_ = f.SetColWidth(countsSheet, "A", "A", 60)
	_ = f.SetColWidth(countsSheet, "B", "B", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Info("export.xlsx.ok",
		"invoices", summary.TotalInvoices,
		"invalid", summary.InvalidInvoices,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
