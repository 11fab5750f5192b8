package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// ErrNotFound is returned when a lookup by id matches nothing
var ErrNotFound = errors.New("not found")

// sessionSelect joins each session with its status definition, lead and project
const sessionSelect = `
	SELECT
		s.id,
		s.date,
		COALESCE(s.time, ''),
		COALESCE(s.status, ''),
		COALESCE(s.status_id, ''),
		COALESCE(st.name, ''),
		COALESCE(st.lifecycle, ''),
		COALESCE(st.sort_order, 0),
		COALESCE(s.lead_id, ''),
		COALESCE(l.name, ''),
		COALESCE(s.project_id, ''),
		COALESCE(p.name, ''),
		COALESCE(s.location, ''),
		COALESCE(s.notes, ''),
		s.created_at,
		s.updated_at
	FROM sessions s
	LEFT JOIN session_statuses st ON st.id = s.status_id
	LEFT JOIN leads l ON l.id = s.lead_id
	LEFT JOIN projects p ON p.id = s.project_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var s models.Session
	var statusID, statusName, statusLifecycle string
	var sortOrder int
	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.Time,
		&s.Status,
		&statusID,
		&statusName,
		&statusLifecycle,
		&sortOrder,
		&s.LeadID,
		&s.LeadName,
		&s.ProjectID,
		&s.ProjectName,
		&s.Location,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return s, err
	}
	if statusID != "" {
		s.StatusDefinition = &models.StatusDefinition{
			ID:        statusID,
			Name:      statusName,
			Lifecycle: models.Lifecycle(statusLifecycle),
			SortOrder: sortOrder,
		}
	}
	return s, nil
}

// SessionFilter narrows ListSessions. Zero values mean no filtering.
type SessionFilter struct {
	LeadID     string
	ProjectID  string
	After      string // inclusive YYYY-MM-DD
	Before     string // inclusive YYYY-MM-DD
	Lifecycles []models.Lifecycle
	Limit      int
}

// ListSessions returns sessions matching the filter in lifecycle order:
// upcoming active work first, then completed and cancelled sessions newest first
func (db *DB) ListSessions(filter SessionFilter) ([]models.Session, error) {
	query := sessionSelect + " WHERE 1=1"
	args := []interface{}{}

	if filter.LeadID != "" {
		query += " AND s.lead_id = ?"
		args = append(args, filter.LeadID)
	}
	if filter.ProjectID != "" {
		query += " AND s.project_id = ?"
		args = append(args, filter.ProjectID)
	}
	if filter.After != "" {
		query += " AND s.date >= ?"
		args = append(args, filter.After)
	}
	if filter.Before != "" {
		query += " AND s.date <= ?"
		args = append(args, filter.Before)
	}

	sessions, err := db.querySessions(query, args...)
	if err != nil {
		return nil, err
	}

	// Lifecycle depends on legacy labels too, so it is filtered after resolution
	if len(filter.Lifecycles) > 0 {
		sessions = lifecycle.Filter(sessions, filter.Lifecycles...)
	}

	sessions = lifecycle.Sort(sessions)
	if filter.Limit > 0 && len(sessions) > filter.Limit {
		sessions = sessions[:filter.Limit]
	}
	return sessions, nil
}

// SessionsBetween loads sessions dated from..to inclusive with their status
// definitions but without lead or project names, unordered. Callers that
// need names batch-load them with LeadsByIDs and ProjectsByIDs.
func (db *DB) SessionsBetween(from, to string) ([]models.Session, error) {
	return db.querySessions(`
		SELECT
			s.id,
			s.date,
			COALESCE(s.time, ''),
			COALESCE(s.status, ''),
			COALESCE(s.status_id, ''),
			COALESCE(st.name, ''),
			COALESCE(st.lifecycle, ''),
			COALESCE(st.sort_order, 0),
			COALESCE(s.lead_id, ''),
			'',
			COALESCE(s.project_id, ''),
			'',
			COALESCE(s.location, ''),
			COALESCE(s.notes, ''),
			s.created_at,
			s.updated_at
		FROM sessions s
		LEFT JOIN session_statuses st ON st.id = s.status_id
		WHERE s.date >= ? AND s.date <= ?`, from, to)
}

// SessionsByIDs loads the given sessions, unordered
func (db *DB) SessionsByIDs(ids []string) ([]models.Session, error) {
	if len(ids) == 0 {
		return []models.Session{}, nil
	}
	placeholders, args := inClause(ids)
	return db.querySessions(sessionSelect+" WHERE s.id IN ("+placeholders+")", args...)
}

func (db *DB) querySessions(query string, args ...interface{}) ([]models.Session, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetSession returns one session with its joined status, lead and project
func (db *DB) GetSession(id string) (*models.Session, error) {
	s, err := scanSession(db.QueryRow(sessionSelect+" WHERE s.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertSession inserts or replaces a session record
func (db *DB) UpsertSession(s models.Session) error {
	return upsertSession(db.conn, s)
}

func upsertSession(ex execer, s models.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	statusID := ""
	if s.StatusDefinition != nil {
		statusID = s.StatusDefinition.ID
	}

	now := time.Now().UTC()
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err := ex.Exec(`
		INSERT INTO sessions
		(id, date, time, status, status_id, lead_id, project_id, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			time = excluded.time,
			status = excluded.status,
			status_id = excluded.status_id,
			lead_id = excluded.lead_id,
			project_id = excluded.project_id,
			location = excluded.location,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		s.ID,
		s.Date,
		nullable(s.Time),
		nullable(s.Status),
		nullable(statusID),
		nullable(s.LeadID),
		nullable(s.ProjectID),
		nullable(s.Location),
		nullable(s.Notes),
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	return nil
}

// UpdateSessionStatus changes a session's status. A value naming a status
// definition (by id or case-insensitive name) links that definition;
// anything else is stored as a legacy label and unlinks the definition.
func (db *DB) UpdateSessionStatus(id, status string) (*models.Session, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, errors.New("status cannot be empty")
	}

	def, err := db.FindStatusDefinition(status)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var res sql.Result
	if def != nil {
		res, err = db.Exec(`
			UPDATE sessions SET status = ?, status_id = ?, updated_at = ?
			WHERE id = ?
		`, def.Name, def.ID, time.Now().UTC(), id)
	} else {
		res, err = db.Exec(`
			UPDATE sessions SET status = ?, status_id = NULL, updated_at = ?
			WHERE id = ?
		`, status, time.Now().UTC(), id)
	}
	if err != nil {
		return nil, fmt.Errorf("update session %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	return db.GetSession(id)
}

// DeleteSession removes a session
func (db *DB) DeleteSession(id string) error {
	res, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// inClause builds "?,?,?" placeholders and matching args
func inClause(ids []string) (string, []interface{}) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}
