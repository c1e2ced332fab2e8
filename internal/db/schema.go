package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// Tests load it through GetSchemaSQL() instead of hardcoding CREATE TABLE
// statements, so repository code and schema cannot drift apart.
//
// When adding new columns or tables:
//  1. Add a migration to migrations
//  2. Update SchemaSQL here
//  3. Run the db package tests to verify alignment
const SchemaSQL = `
-- Property bag storage: one row per (source, object, attribute)
CREATE TABLE IF NOT EXISTS object_values (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	object TEXT NOT NULL,
	attrib TEXT NOT NULL,
	value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (source, object, attrib)
);

CREATE INDEX IF NOT EXISTS idx_object_values_source ON object_values(source);
CREATE INDEX IF NOT EXISTS idx_object_values_source_attrib ON object_values(source, attrib, value);
`

// InitSchema creates the database schema
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
