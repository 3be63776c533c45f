package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/ports"
)

// NamedDocument is one source document handed to batch extraction: the file
// name fixes its place in the canonical batch order, the bytes are the raw
// document content.
type NamedDocument struct {
	Name string
	Data []byte
}

type ExtractInvoicesUseCase struct {
	source  ports.TextSource
	parser  ports.InvoiceParser
	workers int
}

func NewExtractInvoicesUseCase(source ports.TextSource, parser ports.InvoiceParser, workers int) *ExtractInvoicesUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &ExtractInvoicesUseCase{
		source:  source,
		parser:  parser,
		workers: workers,
	}
}

// ExtractAll extracts one invoice per document in name-sorted order.
// Documents are processed on a bounded worker pool; results are collected
// back into sorted order, never completion order. A document whose text
// acquisition fails is logged and omitted; it never fails the batch.
func (uc *ExtractInvoicesUseCase) ExtractAll(ctx context.Context, docs []NamedDocument) []domain.Invoice {
	ordered := make([]NamedDocument, len(docs))
	copy(ordered, docs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	slots := make([]*domain.Invoice, len(ordered))

	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.workers)
	for i := range ordered {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i] = uc.extractOne(ctx, ordered[i])
		}(i)
	}
	wg.Wait()

	invoices := make([]domain.Invoice, 0, len(ordered))
	for _, inv := range slots {
		if inv != nil {
			invoices = append(invoices, *inv)
		}
	}
	return invoices
}

func (uc *ExtractInvoicesUseCase) extractOne(ctx context.Context, doc NamedDocument) *domain.Invoice {
	text, err := uc.source.Text(ctx, doc.Name, doc.Data)
	if err != nil {
		slog.Warn("document_extraction_failed", "document", doc.Name, "error", err)
		return nil
	}
	inv := uc.parser.ParseText(text)
	inv.NormalizeLineItems()
	return &inv
}

// ExtractFromStorage reads every file from storage and extracts the batch.
// A missing storage directory is a hard input error; a single unreadable
// file is isolated like any other per-document failure.
func (uc *ExtractInvoicesUseCase) ExtractFromStorage(ctx context.Context, storage ports.ObjectStorage) ([]domain.Invoice, error) {
	names, err := storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]NamedDocument, 0, len(names))
	for _, name := range names {
		data, err := readDocument(ctx, storage, name)
		if err != nil {
			slog.Warn("document_read_failed", "document", name, "error", err)
			continue
		}
		docs = append(docs, NamedDocument{Name: name, Data: data})
	}

	return uc.ExtractAll(ctx, docs), nil
}

func readDocument(ctx context.Context, storage ports.ObjectStorage, name string) ([]byte, error) {
	rc, err := storage.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
