package db

import (
	"database/sql"
	"fmt"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Writer performs upserts inside a single transaction
type Writer struct {
	tx *sql.Tx
}

// WithTx runs fn in a transaction, committing only if fn returns nil
func (db *DB) WithTx(fn func(w *Writer) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Writer{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (w *Writer) UpsertStatusDefinition(def models.StatusDefinition) error {
	return upsertStatusDefinition(w.tx, def)
}

func (w *Writer) UpsertLead(l models.Lead) error {
	return upsertLead(w.tx, l)
}

func (w *Writer) UpsertProject(p models.Project) error {
	return upsertProject(w.tx, p)
}

func (w *Writer) UpsertSession(s models.Session) error {
	return upsertSession(w.tx, s)
}

func (w *Writer) UpsertTemplate(t models.MessageTemplate) error {
	return upsertTemplate(w.tx, t)
}

// StatusExists reports whether a status definition id is known
func (w *Writer) StatusExists(id string) (bool, error) {
	return statusExists(w.tx, id)
}

// RecordImport writes an import_log row
func (w *Writer) RecordImport(filePath, fileHash string, records, sessions int) error {
	_, err := w.tx.Exec(`
		INSERT INTO import_log (file_path, file_hash, records_imported, sessions_imported, status)
		VALUES (?, ?, ?, ?, 'success')
	`, filePath, fileHash, records, sessions)
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// HasImported reports whether a file with this hash was imported before
func (db *DB) HasImported(fileHash string) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM import_log WHERE file_hash = ?)", fileHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check import log: %w", err)
	}
	return exists, nil
}
