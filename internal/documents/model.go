package documents

import "time"

// Document represents a stored artifact: the uploaded binary's metadata plus the
// plain text extracted from it.
type Document struct {
	ID                 int64
	StoredName         string
	OriginalName       string
	FileType           string
	ExtractedText      string
	ContentFingerprint string
	UploadedAt         time.Time
}

// Summary is the listing view of a document, without its text.
type Summary struct {
	ID           int64
	OriginalName string
	FileType     string
	UploadedAt   time.Time
}

// SummaryWithPreview adds the first 200 characters of extracted text for search hits.
type SummaryWithPreview struct {
	Summary
	Preview string
}

// PreviewLength is the number of characters of extracted text shown in search results.
const PreviewLength = 200

// AllowedFileTypes is the set of accepted lowercase file extensions.
var AllowedFileTypes = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"xls":  {},
	"xlsx": {},
	"ppt":  {},
	"pptx": {},
}
