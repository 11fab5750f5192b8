package db

import (
	"database/sql"
	"fmt"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// UpsertStatusDefinition inserts or updates a status definition
func (db *DB) UpsertStatusDefinition(def models.StatusDefinition) error {
	return upsertStatusDefinition(db.conn, def)
}

func upsertStatusDefinition(ex execer, def models.StatusDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	_, err := ex.Exec(`
		INSERT INTO session_statuses (id, name, lifecycle, sort_order)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			lifecycle = excluded.lifecycle,
			sort_order = excluded.sort_order
	`, def.ID, def.Name, string(def.Lifecycle), def.SortOrder)
	if err != nil {
		return fmt.Errorf("upsert status %s: %w", def.ID, err)
	}
	return nil
}

// ListStatusDefinitions returns all status definitions in display order
func (db *DB) ListStatusDefinitions() ([]models.StatusDefinition, error) {
	rows, err := db.Query(`
		SELECT id, name, lifecycle, COALESCE(sort_order, 0)
		FROM session_statuses
		ORDER BY sort_order ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var defs []models.StatusDefinition
	for rows.Next() {
		var d models.StatusDefinition
		var lc string
		if err := rows.Scan(&d.ID, &d.Name, &lc, &d.SortOrder); err != nil {
			return nil, err
		}
		d.Lifecycle = models.Lifecycle(lc)
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// FindStatusDefinition looks a definition up by id, then by name ignoring case
func (db *DB) FindStatusDefinition(idOrName string) (*models.StatusDefinition, error) {
	var d models.StatusDefinition
	var lc string
	err := db.QueryRow(`
		SELECT id, name, lifecycle, COALESCE(sort_order, 0)
		FROM session_statuses
		WHERE id = ? OR LOWER(name) = LOWER(?)
		ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END
		LIMIT 1
	`, idOrName, idOrName, idOrName).Scan(&d.ID, &d.Name, &lc, &d.SortOrder)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("status %s: %w", idOrName, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	d.Lifecycle = models.Lifecycle(lc)
	return &d, nil
}

func statusExists(ex execer, id string) (bool, error) {
	var exists bool
	err := ex.QueryRow(`SELECT EXISTS(SELECT 1 FROM session_statuses WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
