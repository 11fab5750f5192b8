package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// UpsertLead inserts or updates a lead
func (db *DB) UpsertLead(l models.Lead) error {
	return upsertLead(db.conn, l)
}

func upsertLead(ex execer, l models.Lead) error {
	if err := l.Validate(); err != nil {
		return err
	}
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := ex.Exec(`
		INSERT INTO leads (id, name, email, phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			status = excluded.status
	`, l.ID, l.Name, nullable(l.Email), nullable(l.Phone), nullable(l.Status), createdAt)
	if err != nil {
		return fmt.Errorf("upsert lead %s: %w", l.ID, err)
	}
	return nil
}

// UpsertProject inserts or updates a project
func (db *DB) UpsertProject(p models.Project) error {
	return upsertProject(db.conn, p)
}

func upsertProject(ex execer, p models.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := ex.Exec(`
		INSERT INTO projects (id, name, lead_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			lead_id = excluded.lead_id,
			status = excluded.status
	`, p.ID, p.Name, nullable(p.LeadID), nullable(p.Status), createdAt)
	if err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

// LeadsByIDs returns the requested leads keyed by id
func (db *DB) LeadsByIDs(ids []string) (map[string]models.Lead, error) {
	out := make(map[string]models.Lead, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders, args := inClause(ids)
	rows, err := db.Query(`
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(status, ''), created_at
		FROM leads WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		out[l.ID] = l
	}
	return out, rows.Err()
}

// ProjectsByIDs returns the requested projects keyed by id
func (db *DB) ProjectsByIDs(ids []string) (map[string]models.Project, error) {
	out := make(map[string]models.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders, args := inClause(ids)
	rows, err := db.Query(`
		SELECT id, name, COALESCE(lead_id, ''), COALESCE(status, ''), created_at
		FROM projects WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.LeadID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// FindLeadID resolves a lead by id or case-insensitive name
func (db *DB) FindLeadID(idOrName string) (string, error) {
	var id string
	err := db.QueryRow(`
		SELECT id FROM leads WHERE id = ? OR LOWER(name) = LOWER(?)
		ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END LIMIT 1
	`, idOrName, idOrName, idOrName).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("lead %s: %w", idOrName, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
