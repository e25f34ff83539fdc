// Package sqlite_test contains integration tests for SQLite repositories.
//
// Every test database is created from db.GetSchemaSQL(); do not hardcode
// CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/prismagen/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun inserts a run backdated by the given number of days and returns its ID.
func seedRun(t *testing.T, db *sql.DB, id, model string, ageDays int) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO generation_runs (id, model, schema_path, artifacts, created_at) VALUES (?, ?, 'prisma/schema.prisma', 'entity', datetime('now', ?))",
		id, model, fmt.Sprintf("-%d days", ageDays),
	)
	if err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return id
}

// seedArtifact inserts an artifact for runID.
func seedArtifact(t *testing.T, db *sql.DB, id, runID string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO generated_artifacts (id, run_id, target, path) VALUES (?, ?, 'entity', '/p/x.entity.ts')",
		id, runID,
	)
	if err != nil {
		t.Fatalf("failed to seed artifact: %v", err)
	}
}

