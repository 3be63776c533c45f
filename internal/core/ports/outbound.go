package ports

import (
	"context"
	"io"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// ObjectStorage stores source documents. List returns file names in sorted
// order, which fixes the canonical batch order for extraction.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context) ([]string, error)
}

// TextSource is the document-to-text collaborator: it flattens one source
// document into a single text blob. The core treats it as a black box and
// isolates its failures per document.
type TextSource interface {
	Text(ctx context.Context, filename string, data []byte) (string, error)
}

// DocumentRepository persists document lifecycle state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// ReportRepository persists the QC outcome of one processed document: the
// extracted invoice and its validation result.
type ReportRepository interface {
	SaveOutcome(ctx context.Context, documentID string, inv *domain.Invoice, result domain.ValidationResult) error
	GetOutcome(ctx context.Context, documentID string) (*domain.Invoice, *domain.ValidationResult, error)
}

// MessageQueue publishes/consumes document-received events.
type MessageQueue interface {
	PublishDocumentReceived(ctx context.Context, documentID string) error
	SubscribeDocumentReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// ReportExporter renders a validation summary into an export format.
type ReportExporter interface {
	Export(summary domain.ValidationSummary) ([]byte, error)
}
