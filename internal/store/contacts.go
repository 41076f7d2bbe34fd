package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/google/uuid"
)

// AddContact inserts a contact, assigning an ID when none is set.
func (db *DB) AddContact(c models.Contact) (models.Contact, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Category == "" {
		c.Category = models.CategoryOther
	}

	_, err := db.conn.Exec(`
		INSERT INTO contacts (id, first_name, last_name, email, category, owner, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.FirstName, c.LastName, c.Email, string(c.Category), c.Owner, c.CreatedAt)
	if err != nil {
		return models.Contact{}, fmt.Errorf("store: insert contact: %w", err)
	}
	return c, nil
}

// DeleteContact removes a contact by id. Match records are kept; they are
// snapshots of past findings, deleted only by explicit user action.
func (db *DB) DeleteContact(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM contacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete contact: %w", err)
	}
	return nil
}

// ListContacts returns one page of an owner's contacts ordered by last
// name. Callers page until a short page comes back.
func (db *DB) ListContacts(owner string, limit, offset int) ([]models.Contact, error) {
	rows, err := db.conn.Query(`
		SELECT id, first_name, last_name, email, category, owner, created_at
		FROM contacts
		WHERE owner = ?
		ORDER BY last_name, first_name, id
		LIMIT ? OFFSET ?
	`, owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("store: list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var category string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &category, &c.Owner, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan contact: %w", err)
		}
		c.Category = models.Category(category)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// AllContacts pages through every contact for an owner.
func (db *DB) AllContacts(owner string) ([]models.Contact, error) {
	const pageSize = 500

	var all []models.Contact
	for offset := 0; ; offset += pageSize {
		page, err := db.ListContacts(owner, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// ImportContactsCSV reads contacts from CSV with a
// first_name,last_name,email,category header. Rows missing both name
// columns are skipped rather than rejected; partial rows still import so
// the user can fix them up, they just will not be indexed for matching.
func (db *DB) ImportContactsCSV(r io.Reader, owner string) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("store: read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("store: read csv row: %w", err)
		}

		first := field(record, "first_name")
		last := field(record, "last_name")
		if first == "" && last == "" {
			continue
		}

		_, err = db.AddContact(models.Contact{
			FirstName: first,
			LastName:  last,
			Email:     field(record, "email"),
			Category:  models.ParseCategory(strings.ToUpper(field(record, "category"))),
			Owner:     owner,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
