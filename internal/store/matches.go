package store

import (
	"fmt"
	"time"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/google/uuid"
)

// UpsertMatch inserts a match record, or updates the existing one when the
// (document_key, contact_id) pair was already recorded. The conflict target
// is exactly that pair: a re-scan or a second in-session discovery refreshes
// the row instead of duplicating it. The original id, found_at, and read
// flag survive the update so re-scans do not resurface old findings as new.
func (db *DB) UpsertMatch(m models.Match) (models.Match, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.FoundAt.IsZero() {
		m.FoundAt = time.Now().UTC()
	}

	_, err := db.conn.Exec(`
		INSERT INTO matches (id, document_key, contact_id, contact_name, category, owner,
			document_title, source, url, location, excerpt, match_type, score, found_at, read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_key, contact_id) DO UPDATE SET
			contact_name   = excluded.contact_name,
			category       = excluded.category,
			document_title = excluded.document_title,
			source         = excluded.source,
			url            = excluded.url,
			location       = excluded.location,
			excerpt        = excluded.excerpt,
			match_type     = excluded.match_type,
			score          = excluded.score
	`, m.ID, m.DocumentKey, m.ContactID, m.ContactName, string(m.Category), m.Owner,
		m.DocumentTitle, m.Source, m.URL, m.Location, m.Excerpt, m.MatchType, m.Score,
		m.FoundAt, m.Read)
	if err != nil {
		return models.Match{}, fmt.Errorf("store: upsert match: %w", err)
	}
	return m, nil
}

// GetMatch returns the record for a (documentKey, contactID) pair, or
// sql.ErrNoRows wrapped when none exists.
func (db *DB) GetMatch(documentKey, contactID string) (models.Match, error) {
	row := db.conn.QueryRow(`
		SELECT id, document_key, contact_id, contact_name, category, owner,
			document_title, source, url, location, excerpt, match_type, score, found_at, read
		FROM matches
		WHERE document_key = ? AND contact_id = ?
	`, documentKey, contactID)
	return scanMatch(row)
}

// ListMatches returns an owner's matches newest first.
func (db *DB) ListMatches(owner string, limit int) ([]models.Match, error) {
	rows, err := db.conn.Query(`
		SELECT id, document_key, contact_id, contact_name, category, owner,
			document_title, source, url, location, excerpt, match_type, score, found_at, read
		FROM matches
		WHERE owner = ?
		ORDER BY found_at DESC
		LIMIT ?
	`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// CountMatches returns the number of match rows for an owner.
func (db *DB) CountMatches(owner string) (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM matches WHERE owner = ?`, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count matches: %w", err)
	}
	return n, nil
}

// MarkMatchRead flips the read flag on a match record.
func (db *DB) MarkMatchRead(id string) error {
	if _, err := db.conn.Exec(`UPDATE matches SET read = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: mark match read: %w", err)
	}
	return nil
}

// DeleteMatch removes a match record; deletion is a user action, never
// performed by the scanning pipeline itself.
func (db *DB) DeleteMatch(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM matches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete match: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (models.Match, error) {
	var m models.Match
	var category string
	err := row.Scan(&m.ID, &m.DocumentKey, &m.ContactID, &m.ContactName, &category, &m.Owner,
		&m.DocumentTitle, &m.Source, &m.URL, &m.Location, &m.Excerpt, &m.MatchType,
		&m.Score, &m.FoundAt, &m.Read)
	if err != nil {
		return models.Match{}, fmt.Errorf("store: scan match: %w", err)
	}
	m.Category = models.Category(category)
	return m, nil
}
