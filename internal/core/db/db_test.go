package db

import (
	"os"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	var count int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}

	// Should have: session_statuses, leads, projects, sessions, message_templates, import_log, sessions_fts
	if count < 7 {
		t.Errorf("Expected at least 7 tables, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}

	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestNew_ForeignKeys(t *testing.T) {
	database := newTestDB(t)

	var fkEnabled int
	err := database.conn.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		t.Fatalf("Failed to query foreign keys: %v", err)
	}

	if fkEnabled != 1 {
		t.Errorf("Expected foreign keys enabled (1), got %d", fkEnabled)
	}
}

func TestMigration_AddsStatusID(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "legacy-*.db")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()
	_ = tmpfile.Close()

	// Open once to create the full schema, then rebuild sessions without
	// status_id to look like a database from before status definitions
	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = database.Exec(`
		DROP TRIGGER sessions_ai;
		DROP TRIGGER sessions_ad;
		DROP TRIGGER sessions_au;
		DROP INDEX idx_sessions_status_id;
		DROP TABLE sessions;
		CREATE TABLE sessions (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			time TEXT,
			status TEXT,
			lead_id TEXT,
			project_id TEXT,
			location TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO sessions (id, date, status) VALUES ('old-1', '2024-05-01', 'delivered');
	`)
	if err != nil {
		t.Fatalf("failed to build legacy schema: %v", err)
	}
	_ = database.Close()

	database, err = New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() on legacy database error = %v", err)
	}
	defer func() { _ = database.Close() }()

	var hasStatusID int
	err = database.conn.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('sessions') WHERE name='status_id'`).Scan(&hasStatusID)
	if err != nil {
		t.Fatal(err)
	}
	if hasStatusID != 1 {
		t.Fatal("status_id column was not added")
	}

	s, err := database.GetSession("old-1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if s.Status != "delivered" || s.StatusDefinition != nil {
		t.Errorf("legacy session = %+v, want legacy status only", s)
	}
}

func TestIndexes(t *testing.T) {
	database := newTestDB(t)

	var indexCount int
	err := database.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND tbl_name='sessions'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to count session indexes: %v", err)
	}

	// date, lead_id, project_id, updated_at, status_id plus the autoindex on id
	if indexCount < 5 {
		t.Errorf("Expected at least 5 indexes on sessions, got %d", indexCount)
	}
}
