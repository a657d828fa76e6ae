package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"docrepo-backend/internal/extract"
	"docrepo-backend/internal/shared/storage/object"
	"docrepo-backend/internal/shared/telemetry"
	"docrepo-backend/internal/shared/util"
)

// ExtractFunc converts a stored binary into plain text.
type ExtractFunc func(ctx context.Context, data []byte, fileType string) (string, error)

// Service orchestrates ingestion and retrieval of documents.
type Service struct {
	Store   object.ObjectStore
	Repo    Repo
	Gate    *Gate
	Extract ExtractFunc
}

// NewService constructs a Service with the default text extractor.
func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{
		Store:   store,
		Repo:    repo,
		Gate:    &Gate{Repo: repo},
		Extract: extract.Text,
	}
}

// IncomingFile is one file of an upload batch.
type IncomingFile struct {
	Name string
	Body io.Reader
}

// UploadBatch ingests each file independently: a bad file never poisons the rest
// of the batch. Outcomes are reported per file as uploaded, skipped (duplicate),
// or errored.
func (s *Service) UploadBatch(ctx context.Context, files []IncomingFile) BatchResult {
	result := BatchResult{
		Uploaded: []UploadedFile{},
		Skipped:  []SkippedFile{},
		Errors:   []FailedFile{},
	}

	for _, file := range files {
		if file.Name == "" {
			continue
		}
		s.processFile(ctx, file, &result)
	}
	return result
}

func (s *Service) processFile(ctx context.Context, file IncomingFile, result *BatchResult) {
	originalName, err := util.SanitizeFileName(file.Name)
	if err != nil {
		result.Errors = append(result.Errors, FailedFile{OriginalName: file.Name, Reason: "invalid file name"})
		return
	}

	fileType := util.FileExt(originalName)
	if _, ok := AllowedFileTypes[fileType]; !ok {
		result.Errors = append(result.Errors, FailedFile{OriginalName: originalName, Reason: "file type not allowed"})
		return
	}

	storedName, _, err := s.Store.Save(ctx, fileType, file.Body)
	if err != nil {
		result.Errors = append(result.Errors, FailedFile{OriginalName: originalName, Reason: "failed to store file"})
		telemetry.Error("documents.upload.save_failed", map[string]any{
			"original_name": originalName,
			"err":           err.Error(),
		})
		return
	}

	text := s.extractText(ctx, storedName, fileType, originalName)

	check, err := s.Gate.Check(ctx, text)
	if err != nil {
		s.cleanupBinary(ctx, storedName)
		result.Errors = append(result.Errors, FailedFile{OriginalName: originalName, Reason: "duplicate check failed"})
		return
	}

	if check.Duplicate {
		s.cleanupBinary(ctx, storedName)
		result.Skipped = append(result.Skipped, SkippedFile{
			OriginalName:         originalName,
			Reason:               "duplicate",
			ExistingID:           check.Existing.ID,
			ExistingOriginalName: check.Existing.OriginalName,
			ExistingUploadDate:   check.Existing.UploadedAt,
		})
		return
	}

	id, err := s.Repo.Insert(ctx, Document{
		StoredName:         storedName,
		OriginalName:       originalName,
		FileType:           fileType,
		ExtractedText:      text,
		ContentFingerprint: check.Fingerprint,
		UploadedAt:         time.Now().UTC(),
	})
	if err != nil {
		s.cleanupBinary(ctx, storedName)
		result.Errors = append(result.Errors, FailedFile{OriginalName: originalName, Reason: "failed to record document"})
		telemetry.Error("documents.upload.insert_failed", map[string]any{
			"original_name": originalName,
			"err":           err.Error(),
		})
		return
	}

	result.Uploaded = append(result.Uploaded, UploadedFile{ID: id, OriginalName: originalName})
}

// extractText reads the stored binary back and extracts its text. Extraction
// failure is degraded, not fatal: the document is stored with empty text.
func (s *Service) extractText(ctx context.Context, storedName, fileType, originalName string) string {
	rc, err := s.Store.Open(ctx, storedName)
	if err != nil {
		telemetry.Warn("documents.extract.open_failed", map[string]any{
			"stored_name": storedName,
			"err":         err.Error(),
		})
		return ""
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		telemetry.Warn("documents.extract.read_failed", map[string]any{
			"stored_name": storedName,
			"err":         err.Error(),
		})
		return ""
	}

	text, err := s.Extract(ctx, data, fileType)
	if err != nil {
		telemetry.Warn("documents.extract.failed", map[string]any{
			"original_name": originalName,
			"file_type":     fileType,
			"err":           err.Error(),
		})
		return ""
	}
	return text
}

// cleanupBinary removes an orphaned upload. Best-effort: failures are logged,
// never escalated.
func (s *Service) cleanupBinary(ctx context.Context, storedName string) {
	if err := s.Store.Remove(ctx, storedName); err != nil {
		telemetry.Warn("documents.cleanup.failed", map[string]any{
			"stored_name": storedName,
			"err":         err.Error(),
		})
	}
}

// Search routes an empty query to the full listing and a non-empty query to
// substring search. Read-only.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if query == "" {
		summaries, err := s.Repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]SearchResult, 0, len(summaries))
		for _, summary := range summaries {
			out = append(out, searchResultOf(summary, ""))
		}
		return out, nil
	}

	hits, err := s.Repo.SearchByText(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		out = append(out, searchResultOf(hit.Summary, hit.Preview))
	}
	return out, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id int64) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// OpenDownload returns the document metadata and a reader over its stored binary.
func (s *Service) OpenDownload(ctx context.Context, id int64) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StoredName)
	if err != nil {
		return Document{}, nil, fmt.Errorf("open stored binary: %w", err)
	}
	return doc, rc, nil
}

// Delete removes the document row, then removes the binary. Binary removal is
// best-effort; a missing file only produces a log line.
func (s *Service) Delete(ctx context.Context, id int64) error {
	storedName, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	s.cleanupBinary(ctx, storedName)
	return nil
}
