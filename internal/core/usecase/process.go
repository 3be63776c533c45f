package usecase

import (
	"context"
	"fmt"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	storage   ports.ObjectStorage
	source    ports.TextSource
	parser    ports.InvoiceParser
	validator ports.InvoiceValidator
	reports   ports.ReportRepository
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	source ports.TextSource,
	parser ports.InvoiceParser,
	validator ports.InvoiceValidator,
	reports ports.ReportRepository,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		storage:   storage,
		source:    source,
		parser:    parser,
		validator: validator,
		reports:   reports,
	}
}

// ProcessByID runs the QC pipeline for one stored document: acquire text,
// extract the invoice, validate it, persist the outcome. Failures mark the
// document failed and never touch sibling documents.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.runPipeline(ctx, documentID); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateStatus(ctx, documentID, domain.StatusValidated, ""); err != nil {
		return fmt.Errorf("set status=validated: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) runPipeline(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	data, err := readDocument(ctx, uc.storage, doc.StoragePath)
	if err != nil {
		return err
	}

	text, err := uc.source.Text(ctx, doc.Filename, data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	inv := uc.parser.ParseText(text)
	inv.NormalizeLineItems()
	result := uc.validator.ValidateOne(&inv)

	if err := uc.reports.SaveOutcome(ctx, doc.ID, &inv, result); err != nil {
		return fmt.Errorf("save qc outcome: %w", err)
	}
	return nil
}
