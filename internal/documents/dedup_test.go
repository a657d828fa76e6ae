package documents

import (
	"context"
	"testing"
	"time"

	"docrepo-backend/internal/shared/util"
)

func TestGateCheckFreshThenDuplicate(t *testing.T) {
	repo := NewMemoryRepo()
	gate := &Gate{Repo: repo}
	ctx := context.Background()

	text := "meeting minutes for q3"
	check, err := gate.Check(ctx, text)
	if err != nil {
		t.Fatalf("check fresh: %v", err)
	}
	if check.Duplicate {
		t.Fatal("expected fresh result on empty store")
	}
	if check.Fingerprint != util.Fingerprint(text) {
		t.Fatalf("expected precomputed fingerprint, got %s", check.Fingerprint)
	}

	id, err := repo.Insert(ctx, Document{
		StoredName:         "abc.pdf",
		OriginalName:       "minutes.pdf",
		FileType:           "pdf",
		ExtractedText:      text,
		ContentFingerprint: check.Fingerprint,
		UploadedAt:         time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	again, err := gate.Check(ctx, text)
	if err != nil {
		t.Fatalf("check duplicate: %v", err)
	}
	if !again.Duplicate {
		t.Fatal("expected duplicate after insert")
	}
	if again.Existing.ID != id || again.Existing.OriginalName != "minutes.pdf" {
		t.Fatalf("unexpected existing reference: %+v", again.Existing)
	}
}

func TestGateCheckDistinguishesNearIdenticalText(t *testing.T) {
	repo := NewMemoryRepo()
	gate := &Gate{Repo: repo}
	ctx := context.Background()

	first, err := gate.Check(ctx, "annual budget")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := repo.Insert(ctx, Document{
		ExtractedText:      "annual budget",
		ContentFingerprint: first.Fingerprint,
		UploadedAt:         time.Now().UTC(),
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	second, err := gate.Check(ctx, "annual budget ")
	if err != nil {
		t.Fatalf("check near-identical: %v", err)
	}
	if second.Duplicate {
		t.Fatal("expected trailing whitespace to produce a fresh fingerprint")
	}
}
