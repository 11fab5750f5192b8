package search

import (
	"fmt"
	"strings"

	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// SearchResult represents a single matching session
type SearchResult struct {
	Session models.Session
	Snippet string
}

// SearchFilters narrows search results. Zero values mean no filtering.
type SearchFilters struct {
	LeadID    string
	ProjectID string
	After     string // inclusive YYYY-MM-DD
	Before    string // inclusive YYYY-MM-DD
}

const defaultLimit = 1000

// Search performs a full-text search over session notes and locations.
// Results come back in lifecycle order.
func Search(database *db.DB, query string) ([]SearchResult, error) {
	return SearchWithFilters(database, query, SearchFilters{})
}

// SearchWithFilters performs a search and applies lead, project and date filters
func SearchWithFilters(database *db.DB, query string, filters SearchFilters) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	snippets, err := matchSessions(database, query, filters)
	if err != nil {
		return nil, err
	}
	if len(snippets) == 0 {
		return []SearchResult{}, nil
	}

	ids := make([]string, 0, len(snippets))
	for id := range snippets {
		ids = append(ids, id)
	}
	sessions, err := database.SessionsByIDs(ids)
	if err != nil {
		return nil, err
	}

	sessions = lifecycle.Sort(sessions)
	results := make([]SearchResult, 0, len(sessions))
	for _, s := range sessions {
		results = append(results, SearchResult{Session: s, Snippet: snippets[s.ID]})
	}
	return results, nil
}

// matchSessions returns matching session ids mapped to a text snippet
func matchSessions(database *db.DB, query string, filters SearchFilters) (map[string]string, error) {
	// FTS5 tokenizes these away, so fall back to substring matching
	hasSpecialChars := strings.ContainsAny(query, "-_@#$%&")

	var where []string
	var args []interface{}

	var base string
	if hasSpecialChars {
		base = `
			SELECT s.id, COALESCE(NULLIF(s.notes, ''), s.location, '')
			FROM sessions s
			WHERE (s.notes LIKE '%' || ? || '%' OR s.location LIKE '%' || ? || '%')`
		args = append(args, query, query)
	} else {
		base = `
			SELECT s.id, snippet(sessions_fts, -1, '', '', '...', 32)
			FROM sessions_fts
			JOIN sessions s ON sessions_fts.rowid = s.rowid
			WHERE sessions_fts MATCH ?`
		args = append(args, query)
	}

	if filters.LeadID != "" {
		where = append(where, "s.lead_id = ?")
		args = append(args, filters.LeadID)
	}
	if filters.ProjectID != "" {
		where = append(where, "s.project_id = ?")
		args = append(args, filters.ProjectID)
	}
	if filters.After != "" {
		where = append(where, "s.date >= ?")
		args = append(args, filters.After)
	}
	if filters.Before != "" {
		where = append(where, "s.date <= ?")
		args = append(args, filters.Before)
	}

	q := base
	for _, clause := range where {
		q += " AND " + clause
	}
	q += " LIMIT ?"
	args = append(args, defaultLimit)

	rows, err := database.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snippets := make(map[string]string)
	for rows.Next() {
		var id, snippet string
		if err := rows.Scan(&id, &snippet); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		snippets[id] = snippet
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return snippets, nil
}
