package documents

import "time"

// UploadedFile reports a successfully ingested file in a batch.
type UploadedFile struct {
	ID           int64  `json:"id"`
	OriginalName string `json:"originalName"`
}

// SkippedFile reports a file rejected as a duplicate of an existing document.
type SkippedFile struct {
	OriginalName         string    `json:"originalName"`
	Reason               string    `json:"reason"`
	ExistingID           int64     `json:"existingId"`
	ExistingOriginalName string    `json:"existingOriginalName"`
	ExistingUploadDate   time.Time `json:"existingUploadDate"`
}

// FailedFile reports a file that could not be ingested.
type FailedFile struct {
	OriginalName string `json:"originalName"`
	Reason       string `json:"reason"`
}

// BatchResult is the per-file outcome report for one upload request. Each file
// independently succeeds, is skipped, or errors; the slices are never nil.
type BatchResult struct {
	Uploaded []UploadedFile `json:"uploaded"`
	Skipped  []SkippedFile  `json:"skipped"`
	Errors   []FailedFile   `json:"errors"`
}

// SearchResult is the outward-facing representation of a listing or search hit.
// Preview is present only for text search hits.
type SearchResult struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Preview      string    `json:"preview,omitempty"`
}

// DocumentResponse is the outward-facing representation of a full document.
type DocumentResponse struct {
	ID            int64     `json:"id"`
	OriginalName  string    `json:"originalName"`
	FileType      string    `json:"fileType"`
	ExtractedText string    `json:"extractedText"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:            doc.ID,
		OriginalName:  doc.OriginalName,
		FileType:      doc.FileType,
		ExtractedText: doc.ExtractedText,
		UploadedAt:    doc.UploadedAt,
	}
}

func searchResultOf(s Summary, preview string) SearchResult {
	return SearchResult{
		ID:           s.ID,
		OriginalName: s.OriginalName,
		FileType:     s.FileType,
		UploadedAt:   s.UploadedAt,
		Preview:      preview,
	}
}
