package domain

// ValidationResult is the outcome of running the rule set against one invoice.
// Errors keeps rule-evaluation order; IsValid depends only on its emptiness.
type ValidationResult struct {
	InvoiceID string   `json:"invoice_id"`
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
}

// ValidationSummary aggregates a batch run. Results preserves input order,
// one entry per input invoice. ErrorCounts is keyed by the full error-code
// string, interpolated diagnostic values included.
type ValidationSummary struct {
	TotalInvoices   int                `json:"total_invoices"`
	ValidInvoices   int                `json:"valid_invoices"`
	InvalidInvoices int                `json:"invalid_invoices"`
	ErrorCounts     map[string]int     `json:"error_counts"`
	Results         []ValidationResult `json:"results"`
}
