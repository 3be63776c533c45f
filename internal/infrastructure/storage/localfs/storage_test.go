package localfs

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

func TestSaveOpenList(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := storage.Save(ctx, "b.txt", strings.NewReader("beta")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := storage.Save(ctx, "a.txt", strings.NewReader("alpha")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	names, err := storage.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 || names[0] != "a.txt" || names[1] != "b.txt" {
		t.Fatalf("List() = %v, want sorted [a.txt b.txt]", names)
	}

	rc, err := storage.Open(ctx, "a.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "alpha" {
		t.Fatalf("content = %q, want alpha", data)
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("error kind = %v, want ErrDocumentNotFound", err)
	}
}

func TestOpenFileAsDirectory(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := storage.Save(context.Background(), "plain.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err = Open(filepath.Join(dir, "plain.txt"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error kind = %v, want ErrInvalidInput", err)
	}
}

func TestListSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := New(filepath.Join(dir, "nested")); err != nil {
		t.Fatalf("New(nested) error = %v", err)
	}
	if err := storage.Save(context.Background(), "doc.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	names, err := storage.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "doc.txt" {
		t.Fatalf("List() = %v, want [doc.txt]", names)
	}
}
