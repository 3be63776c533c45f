package ports

import (
	"context"
	"io"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// InvoiceParser turns one document's flattened text into a structured
// invoice. Parsing never fails; unlocatable attributes stay unset.
type InvoiceParser interface {
	ParseText(text string) domain.Invoice
}

// InvoiceValidator evaluates the active rule set against invoices.
type InvoiceValidator interface {
	ValidateOne(inv *domain.Invoice) domain.ValidationResult
	ValidateBatch(invoices []domain.Invoice) domain.ValidationSummary
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the QC pipeline for one stored document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}
