package db

import (
	"database/sql"
	"fmt"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// UpsertTemplate inserts or updates a message template, keyed by name
func (db *DB) UpsertTemplate(t models.MessageTemplate) error {
	return upsertTemplate(db.conn, t)
}

func upsertTemplate(ex execer, t models.MessageTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	id := t.ID
	if id == "" {
		id = t.Name
	}
	_, err := ex.Exec(`
		INSERT INTO message_templates (id, name, channel, subject, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			channel = excluded.channel,
			subject = excluded.subject,
			body = excluded.body
	`, id, t.Name, nullable(t.Channel), nullable(t.Subject), t.Body)
	if err != nil {
		return fmt.Errorf("upsert template %s: %w", t.Name, err)
	}
	return nil
}

// GetTemplate returns the template with the given name
func (db *DB) GetTemplate(name string) (*models.MessageTemplate, error) {
	var t models.MessageTemplate
	err := db.QueryRow(`
		SELECT id, name, COALESCE(channel, ''), COALESCE(subject, ''), body
		FROM message_templates WHERE name = ?
	`, name).Scan(&t.ID, &t.Name, &t.Channel, &t.Subject, &t.Body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns all message templates ordered by name
func (db *DB) ListTemplates() ([]models.MessageTemplate, error) {
	rows, err := db.Query(`
		SELECT id, name, COALESCE(channel, ''), COALESCE(subject, ''), body
		FROM message_templates ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []models.MessageTemplate
	for rows.Next() {
		var t models.MessageTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Channel, &t.Subject, &t.Body); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
