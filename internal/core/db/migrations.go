package db

import (
	"fmt"
)

// migrate applies database migrations for existing databases
func (db *DB) migrate() error {
	// Migration 1: link sessions to status definitions
	if err := db.migration001AddStatusID(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}

	return nil
}

// migration001AddStatusID adds sessions.status_id. Databases created before
// status definitions existed only carry the legacy free-text status column.
func (db *DB) migration001AddStatusID() error {
	var hasStatusID bool
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('sessions')
		WHERE name='status_id'
	`).Scan(&hasStatusID)
	if err != nil {
		return err
	}

	if !hasStatusID {
		_, err = db.conn.Exec(`
			ALTER TABLE sessions ADD COLUMN status_id TEXT REFERENCES session_statuses(id) ON DELETE SET NULL;
		`)
		if err != nil {
			return fmt.Errorf("add status_id column: %w", err)
		}
	}

	// Index lives here rather than in initSchema: on old databases the
	// column does not exist until the ALTER above has run
	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_sessions_status_id ON sessions(status_id);`)
	if err != nil {
		return fmt.Errorf("create status_id index: %w", err)
	}

	return nil
}
