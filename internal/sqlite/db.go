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

	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS comparisons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    label_a TEXT NOT NULL,
    label_b TEXT NOT NULL,
    event_measure TEXT NOT NULL,
    total_measure TEXT NOT NULL,
    event_a REAL NOT NULL,
    total_a REAL NOT NULL,
    event_b REAL NOT NULL,
    total_b REAL NOT NULL,
    proportion_a REAL NOT NULL,
    proportion_b REAL NOT NULL,
    pooled_proportion REAL NOT NULL,
    standard_error REAL NOT NULL,
    z_score REAL NOT NULL,
    p_value REAL NOT NULL CHECK(p_value >= 0 AND p_value <= 1),
    alpha REAL NOT NULL CHECK(alpha > 0 AND alpha < 1),
    significant INTEGER NOT NULL CHECK(significant IN (0, 1)),
    source TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comparisons_name ON comparisons(name);
CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
