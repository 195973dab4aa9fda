package db

import (
	"database/sql"
	"fmt"
)

const (
	// Schema defines the SQL statements for the dreams table.
	// occurred_at/created_at/updated_at hold ISO-8601 strings so they sort
	// and compare lexicographically; tags holds a JSON array blob.
	Schema = `
CREATE TABLE IF NOT EXISTS dreams (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    occurred_at TEXT NOT NULL,
    content TEXT NOT NULL,
    tags TEXT NOT NULL,
    mood TEXT NOT NULL,
    intensity INTEGER NOT NULL,
    lucid INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`
)

// EnsureSchema creates the dreams table if it does not exist yet.
// Safe to call against an already-initialized database.
func EnsureSchema(conn *sql.DB) error {
	if _, err := conn.Exec(Schema); err != nil {
		return fmt.Errorf("failed to ensure dreams schema: %w", err)
	}
	return nil
}
