package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// Open creates the database at path and runs the migrations.
func Open(path string) (*DB, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the journal schema. It is idempotent.
func (db *DB) RunMigrations() error {
	migration := `
-- Committed executions
CREATE TABLE IF NOT EXISTS executions (
    id TEXT PRIMARY KEY,
    execution_id TEXT NOT NULL,
    case_id TEXT NOT NULL,
    case_external_id TEXT,
    case_name TEXT NOT NULL,
    project_name TEXT NOT NULL,
    plan_id TEXT NOT NULL,
    plan_name TEXT NOT NULL,
    build_name TEXT NOT NULL,
    verdict TEXT NOT NULL CHECK(verdict IN ('p', 'b', 'f')),
    notes TEXT,
    reported_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_execution_id ON executions(execution_id);
CREATE INDEX IF NOT EXISTS idx_case_executions ON executions(case_id);
CREATE INDEX IF NOT EXISTS idx_plan_executions ON executions(plan_name);
CREATE INDEX IF NOT EXISTS idx_reported_at ON executions(reported_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
