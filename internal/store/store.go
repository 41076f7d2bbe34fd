// Package store provides SQLite persistence for contacts and match records.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT 'OTHER',
	owner      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts(owner);

CREATE TABLE IF NOT EXISTS matches (
	id             TEXT NOT NULL,
	document_key   TEXT NOT NULL,
	contact_id     TEXT NOT NULL,
	contact_name   TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT 'OTHER',
	owner          TEXT NOT NULL DEFAULT '',
	document_title TEXT NOT NULL DEFAULT '',
	source         TEXT NOT NULL DEFAULT '',
	url            TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	excerpt        TEXT NOT NULL DEFAULT '',
	match_type     TEXT NOT NULL DEFAULT '',
	score          INTEGER NOT NULL DEFAULT 0,
	found_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	read           INTEGER NOT NULL DEFAULT 0,
	UNIQUE(document_key, contact_id)
);

CREATE INDEX IF NOT EXISTS idx_matches_owner ON matches(owner);
CREATE INDEX IF NOT EXISTS idx_matches_found_at ON matches(found_at);
`

// DB wraps a sql.DB with contact and match operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
