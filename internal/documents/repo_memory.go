package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured and in tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	docs   []Document
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Insert stores a new document. Ids increase monotonically and are never reused,
// even after deletes.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = r.nextID
	r.nextID++
	r.docs = append(r.docs, doc)
	return doc.ID, nil
}

// FindByFingerprint returns the first document with the given fingerprint.
func (r *MemoryRepo) FindByFingerprint(ctx context.Context, fingerprint string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.docs {
		if r.docs[i].ContentFingerprint == fingerprint {
			return r.docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// GetByID returns a document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			return r.docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListAll returns summaries of every document, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	docs := make([]Document, len(r.docs))
	copy(docs, r.docs)
	r.mu.RUnlock()

	sortNewestFirst(docs)
	out := make([]Summary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, summaryOf(doc))
	}
	return out, nil
}

// SearchByText returns documents containing substring, newest first, with previews.
func (r *MemoryRepo) SearchByText(ctx context.Context, substring string) ([]SummaryWithPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var matched []Document
	for i := range r.docs {
		if strings.Contains(r.docs[i].ExtractedText, substring) {
			matched = append(matched, r.docs[i])
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)
	out := make([]SummaryWithPreview, 0, len(matched))
	for _, doc := range matched {
		out = append(out, SummaryWithPreview{
			Summary: summaryOf(doc),
			Preview: previewOf(doc.ExtractedText),
		})
	}
	return out, nil
}

// DeleteByID removes a document and returns its stored name.
func (r *MemoryRepo) DeleteByID(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			storedName := r.docs[i].StoredName
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return storedName, nil
		}
	}
	return "", ErrNotFound
}

func sortNewestFirst(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].ID > docs[j].ID
		}
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
}

func summaryOf(doc Document) Summary {
	return Summary{
		ID:           doc.ID,
		OriginalName: doc.OriginalName,
		FileType:     doc.FileType,
		UploadedAt:   doc.UploadedAt,
	}
}

func previewOf(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength])
}

var _ Repo = (*MemoryRepo)(nil)
