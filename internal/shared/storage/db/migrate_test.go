package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"docrepo-backend/internal/shared/util"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.db")
	database, err := Open(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestMigrateFreshDatabase(t *testing.T) {
	database := openTestDB(t)

	if err := Migrate(context.Background(), database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{"documents", "users"} {
		ok, err := tableExists(context.Background(), database, table)
		if err != nil {
			t.Fatalf("tableExists(%s): %v", table, err)
		}
		if !ok {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestMigrateBackfillsLegacyRowsIdempotently(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	// Legacy schema: no content_fingerprint column.
	legacy := `
	CREATE TABLE documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stored_name TEXT NOT NULL,
		original_name TEXT NOT NULL,
		file_type TEXT NOT NULL,
		extracted_text TEXT NOT NULL,
		uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := database.ExecContext(ctx, legacy); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	texts := []string{"hello world", "goodbye", ""}
	for i, text := range texts {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO documents (stored_name, original_name, file_type, extracted_text) VALUES (?, ?, ?, ?)`,
			"stored", "orig", "pdf", text); err != nil {
			t.Fatalf("insert legacy row %d: %v", i, err)
		}
	}

	if err := Migrate(ctx, database); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	first := readFingerprints(t, database)
	for i, text := range texts {
		if want := util.Fingerprint(text); first[i] != want {
			t.Fatalf("row %d: expected fingerprint %s, got %s", i, want, first[i])
		}
	}

	// Second and third runs must not change anything.
	for run := 2; run <= 3; run++ {
		if err := Migrate(ctx, database); err != nil {
			t.Fatalf("migrate run %d: %v", run, err)
		}
	}
	again := readFingerprints(t, database)
	for i := range first {
		if again[i] != first[i] {
			t.Fatalf("row %d: fingerprint changed across migrations: %s -> %s", i, first[i], again[i])
		}
	}
}

func readFingerprints(t *testing.T, database *sql.DB) []string {
	t.Helper()
	rows, err := database.Query(`SELECT content_fingerprint FROM documents ORDER BY id`)
	if err != nil {
		t.Fatalf("select fingerprints: %v", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			t.Fatalf("scan fingerprint: %v", err)
		}
		out = append(out, fp)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return out
}
