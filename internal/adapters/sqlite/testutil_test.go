// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/davesims/rhom-sti/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedObject inserts the attribute rows of one object.
func seedObject(t *testing.T, db *sql.DB, source, object string, attrs map[string]string) {
	t.Helper()
	for k, v := range attrs {
		_, err := db.Exec(
			"INSERT INTO object_values (source, object, attrib, value) VALUES (?, ?, ?, ?)",
			source, object, k, v,
		)
		if err != nil {
			t.Fatalf("failed to seed object %s: %v", object, err)
		}
	}
}
