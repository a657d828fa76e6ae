package db

import (
	"context"
	"database/sql"
	"fmt"

	"docrepo-backend/internal/shared/telemetry"
	"docrepo-backend/internal/shared/util"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	stored_name TEXT NOT NULL,
	original_name TEXT NOT NULL,
	file_type TEXT NOT NULL,
	extracted_text TEXT NOT NULL,
	content_fingerprint TEXT NOT NULL DEFAULT '',
	uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash BLOB NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const fingerprintIndex = `
CREATE INDEX IF NOT EXISTS idx_documents_fingerprint ON documents(content_fingerprint);`

// Migrate brings the schema up to date. It is idempotent and must complete before
// the server accepts requests: a partially migrated store (rows without fingerprints)
// would break duplicate detection.
//
// Pre-existing databases from before content-addressed deduplication lack the
// content_fingerprint column; Migrate adds it and backfills every row by hashing its
// extracted text, then creates the lookup index.
func Migrate(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}

	legacy, err := tableExists(ctx, database, "documents")
	if err != nil {
		return err
	}

	if _, err := database.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	if _, err := database.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	if legacy {
		hasColumn, err := columnExists(ctx, database, "documents", "content_fingerprint")
		if err != nil {
			return err
		}
		if !hasColumn {
			if _, err := database.ExecContext(ctx,
				`ALTER TABLE documents ADD COLUMN content_fingerprint TEXT NOT NULL DEFAULT ''`); err != nil {
				return fmt.Errorf("add content_fingerprint column: %w", err)
			}
		}
		if err := backfillFingerprints(ctx, database); err != nil {
			return err
		}
	}

	if _, err := database.ExecContext(ctx, fingerprintIndex); err != nil {
		return fmt.Errorf("create fingerprint index: %w", err)
	}

	return nil
}

func tableExists(ctx context.Context, database *sql.DB, name string) (bool, error) {
	var found string
	err := database.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return true, nil
}

func columnExists(ctx context.Context, database *sql.DB, table, column string) (bool, error) {
	rows, err := database.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// backfillFingerprints hashes the extracted text of every row that has no fingerprint
// yet. The empty string is never a valid fingerprint (hashing "" yields a 64-char
// digest), so re-running the backfill is a no-op once all rows are filled.
func backfillFingerprints(ctx context.Context, database *sql.DB) error {
	rows, err := database.QueryContext(ctx,
		`SELECT id, extracted_text FROM documents WHERE content_fingerprint = ''`)
	if err != nil {
		return fmt.Errorf("select unfingerprinted rows: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id   int64
		text string
	}
	var backlog []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.text); err != nil {
			return err
		}
		backlog = append(backlog, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(backlog) == 0 {
		return nil
	}

	for _, p := range backlog {
		if _, err := database.ExecContext(ctx,
			`UPDATE documents SET content_fingerprint = ? WHERE id = ?`,
			util.Fingerprint(p.text), p.id); err != nil {
			return fmt.Errorf("backfill fingerprint for id %d: %w", p.id, err)
		}
	}

	telemetry.Info("db.migrate.backfill", map[string]any{"rows": len(backlog)})
	return nil
}
