package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path, enables WAL and
// applies the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Timestamps are stored as unix seconds;
// a zero means "not set" for nullable-ish columns.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL DEFAULT '',
    full_name TEXT,
    password_hash TEXT NOT NULL,
    primary_language TEXT NOT NULL,
    secondary_language TEXT NOT NULL,
    tier TEXT NOT NULL DEFAULT 'free',
    tier_expires_at INTEGER,
    daily_tokens_used INTEGER NOT NULL DEFAULT 0,
    monthly_tokens_used INTEGER NOT NULL DEFAULT 0,
    total_tokens_used INTEGER NOT NULL DEFAULT 0,
    last_daily_reset INTEGER NOT NULL DEFAULT 0,
    last_monthly_reset INTEGER NOT NULL DEFAULT 0,
    session_state TEXT NOT NULL DEFAULT 'idle',
    session_language TEXT NOT NULL DEFAULT '',
    session_expires_at INTEGER NOT NULL DEFAULT 0,
    total_translations INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exchanges (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    original_text TEXT NOT NULL,
    source_language TEXT NOT NULL,
    translated_text TEXT NOT NULL,
    target_language TEXT NOT NULL,
    back_translation TEXT NOT NULL DEFAULT '',
    detection_method TEXT NOT NULL,
    tokens_used INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exchanges_user_created
    ON exchanges(user_id, created_at DESC);
`)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
