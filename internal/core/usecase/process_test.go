package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/validate"
)

type capturingReports struct {
	documentID string
	invoice    *domain.Invoice
	result     domain.ValidationResult
}

func (c *capturingReports) SaveOutcome(_ context.Context, documentID string, inv *domain.Invoice, result domain.ValidationResult) error {
	c.documentID = documentID
	c.invoice = inv
	c.result = result
	return nil
}

func (c *capturingReports) GetOutcome(context.Context, string) (*domain.Invoice, *domain.ValidationResult, error) {
	return c.invoice, &c.result, nil
}

type failingSource struct{}

func (failingSource) Text(context.Context, string, []byte) (string, error) {
	return "", errors.New("corrupt document")
}

func seedDocument(t *testing.T, repo *recordingRepo, storage *memStorage, id, content string) {
	t.Helper()
	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          id,
		Filename:    id + ".txt",
		StoragePath: id + "_file.txt",
		Status:      domain.StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := storage.Save(context.Background(), doc.StoragePath, strings.NewReader(content)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestProcessByIDHappyPath(t *testing.T) {
	repo := newRecordingRepo()
	storage := &memStorage{files: map[string][]byte{}}
	reports := &capturingReports{}
	uc := NewProcessDocumentUseCase(
		repo, storage, numberSource{}, numberParser{},
		validate.NewDefaultEngine(), reports,
	)

	seedDocument(t, repo, storage, "doc-1", "INV-7")

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}

	if repo.status["doc-1"] != domain.StatusValidated {
		t.Fatalf("status = %q, want validated", repo.status["doc-1"])
	}
	if reports.documentID != "doc-1" {
		t.Fatalf("outcome saved for %q, want doc-1", reports.documentID)
	}
	if reports.invoice.InvoiceNumber == nil || *reports.invoice.InvoiceNumber != "INV-7" {
		t.Fatalf("saved invoice = %+v", reports.invoice)
	}
	if reports.result.InvoiceID != "INV-7" {
		t.Fatalf("result id = %q, want INV-7", reports.result.InvoiceID)
	}
}

func TestProcessByIDMarksFailedOnTextError(t *testing.T) {
	repo := newRecordingRepo()
	storage := &memStorage{files: map[string][]byte{}}
	reports := &capturingReports{}
	uc := NewProcessDocumentUseCase(
		repo, storage, failingSource{}, numberParser{},
		validate.NewDefaultEngine(), reports,
	)

	seedDocument(t, repo, storage, "doc-2", "whatever")

	err := uc.ProcessByID(context.Background(), "doc-2")
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.status["doc-2"] != domain.StatusFailed {
		t.Fatalf("status = %q, want failed", repo.status["doc-2"])
	}
	if repo.errMsg["doc-2"] == "" {
		t.Fatalf("expected recorded error message")
	}
	if reports.documentID != "" {
		t.Fatalf("no outcome should be saved on failure, got %q", reports.documentID)
	}
}

func TestProcessByIDUnknownDocument(t *testing.T) {
	repo := newRecordingRepo()
	storage := &memStorage{files: map[string][]byte{}}
	uc := NewProcessDocumentUseCase(
		repo, storage, numberSource{}, numberParser{},
		validate.NewDefaultEngine(), &capturingReports{},
	)

	if err := uc.ProcessByID(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown document")
	}
}
