package documents

import "context"

// Repo defines persistence operations for documents.
//
// Insert enforces no uniqueness on the fingerprint; the dedup gate pre-checks via
// FindByFingerprint. ListAll and SearchByText return newest-first by upload time.
type Repo interface {
	Insert(ctx context.Context, doc Document) (int64, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (Document, error)
	GetByID(ctx context.Context, id int64) (Document, error)
	ListAll(ctx context.Context) ([]Summary, error)
	SearchByText(ctx context.Context, substring string) ([]SummaryWithPreview, error)
	DeleteByID(ctx context.Context, id int64) (storedName string, err error)
}
