package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docrepo-backend/internal/shared/storage/object"
)

func TestSaveOpenRemove(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	storedName, size, err := store.Save(ctx, "pdf", strings.NewReader("binary payload"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("binary payload")) {
		t.Fatalf("expected size %d, got %d", len("binary payload"), size)
	}
	if !strings.HasSuffix(storedName, ".pdf") {
		t.Fatalf("expected .pdf suffix, got %s", storedName)
	}

	rc, err := store.Open(ctx, storedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "binary payload" {
		t.Fatalf("unexpected contents: %q", data)
	}

	if err := store.Remove(ctx, storedName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Open(ctx, storedName); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if err := store.Remove(ctx, storedName); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	first, _, err := store.Save(ctx, "docx", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, _, err := store.Save(ctx, "docx", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct stored names, got %s twice", first)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"../escape", "a/b", "..", ""} {
		if _, err := store.Open(context.Background(), name); err == nil {
			t.Fatalf("expected error for stored name %q", name)
		}
	}
}
