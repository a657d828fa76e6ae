package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteRepo implements Repo over the embedded SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

// Insert stores a new document and returns its assigned id.
func (r *SQLiteRepo) Insert(ctx context.Context, doc Document) (int64, error) {
	const query = `
INSERT INTO documents (stored_name, original_name, file_type, extracted_text, content_fingerprint, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.StoredName,
		doc.OriginalName,
		doc.FileType,
		doc.ExtractedText,
		doc.ContentFingerprint,
		doc.UploadedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert document id: %w", err)
	}
	return id, nil
}

// FindByFingerprint returns the first live document with the given fingerprint.
// The fingerprint column is indexed, since this runs on every ingestion.
func (r *SQLiteRepo) FindByFingerprint(ctx context.Context, fingerprint string) (Document, error) {
	const query = `
SELECT id, stored_name, original_name, file_type, extracted_text, content_fingerprint, uploaded_at
FROM documents
WHERE content_fingerprint = ?
ORDER BY id
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, fingerprint))
}

// GetByID fetches a document by id.
func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	const query = `
SELECT id, stored_name, original_name, file_type, extracted_text, content_fingerprint, uploaded_at
FROM documents
WHERE id = ?`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListAll returns summaries of every document, newest first.
func (r *SQLiteRepo) ListAll(ctx context.Context) ([]Summary, error) {
	const query = `
SELECT id, original_name, file_type, uploaded_at
FROM documents
ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.OriginalName, &s.FileType, &s.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SearchByText returns documents whose extracted text contains substring as a
// case-sensitive literal, newest first, each with a text preview. instr() is used
// instead of LIKE because sqlite's LIKE is case-insensitive for ASCII and would
// also treat % and _ in the query as wildcards.
func (r *SQLiteRepo) SearchByText(ctx context.Context, substring string) ([]SummaryWithPreview, error) {
	const query = `
SELECT id, original_name, file_type, uploaded_at, substr(extracted_text, 1, ?)
FROM documents
WHERE instr(extracted_text, ?) > 0
ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, PreviewLength, substring)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	out := []SummaryWithPreview{}
	for rows.Next() {
		var s SummaryWithPreview
		if err := rows.Scan(&s.ID, &s.OriginalName, &s.FileType, &s.UploadedAt, &s.Preview); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByID removes the document row and returns the stored binary's name so the
// caller can remove the file as well. A second delete of the same id reports
// ErrNotFound rather than succeeding silently.
func (r *SQLiteRepo) DeleteByID(ctx context.Context, id int64) (string, error) {
	var storedName string
	err := r.DB.QueryRowContext(ctx,
		`SELECT stored_name FROM documents WHERE id = ?`, id).Scan(&storedName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("delete document lookup: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return "", fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", ErrNotFound
	}
	return storedName, nil
}

func (r *SQLiteRepo) scanOne(row *sql.Row) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.StoredName,
		&doc.OriginalName,
		&doc.FileType,
		&doc.ExtractedText,
		&doc.ContentFingerprint,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

var _ Repo = (*SQLiteRepo)(nil)
