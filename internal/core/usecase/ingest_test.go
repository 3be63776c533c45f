package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

type recordingRepo struct {
	created []*domain.Document
	status  map[string]domain.DocumentStatus
	errMsg  map[string]string
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{
		status: map[string]domain.DocumentStatus{},
		errMsg: map[string]string{},
	}
}

func (r *recordingRepo) Create(_ context.Context, doc *domain.Document) error {
	copied := *doc
	r.created = append(r.created, &copied)
	r.status[doc.ID] = doc.Status
	return nil
}

func (r *recordingRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	for _, doc := range r.created {
		if doc.ID == id {
			copied := *doc
			copied.Status = r.status[id]
			return &copied, nil
		}
	}
	return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", context.Canceled)
}

func (r *recordingRepo) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	if _, ok := r.status[id]; !ok {
		return domain.WrapError(domain.ErrDocumentNotFound, "update status", context.Canceled)
	}
	r.status[id] = status
	r.errMsg[id] = errMessage
	return nil
}

type recordingQueue struct {
	published []string
}

func (q *recordingQueue) PublishDocumentReceived(_ context.Context, documentID string) error {
	q.published = append(q.published, documentID)
	return nil
}

func (q *recordingQueue) SubscribeDocumentReceived(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadStoresRecordsAndPublishes(t *testing.T) {
	repo := newRecordingRepo()
	queue := &recordingQueue{}
	storage := &memStorage{files: map[string][]byte{}}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "March Invoice.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if doc.Status != domain.StatusReceived {
		t.Fatalf("status = %q, want received", doc.Status)
	}
	if !strings.HasSuffix(doc.StoragePath, "_March_Invoice.pdf") {
		t.Fatalf("storage path = %q, want sanitized filename suffix", doc.StoragePath)
	}
	if _, ok := storage.files[doc.StoragePath]; !ok {
		t.Fatalf("document bytes not saved under %q", doc.StoragePath)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d, want 1", len(repo.created))
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("published = %v, want [%s]", queue.published, doc.ID)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"invoice.pdf", "invoice.pdf"},
		{"my invoice (1).pdf", "my_invoice__1_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"", "document.bin"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
