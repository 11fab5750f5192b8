package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/importer"
	"github.com/studiodesk/studiodesk/internal/core/messaging"
	"github.com/studiodesk/studiodesk/internal/core/models"
	"github.com/studiodesk/studiodesk/internal/core/search"
)

type errMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	sessions []models.Session
}

type sessionDetailLoadedMsg struct {
	session  models.Session
	reminder string
}

type searchResultsMsg struct {
	query   string
	results []search.SearchResult
}

type syncCompleteMsg struct {
	summary string
}

type statusUpdatedMsg struct {
	text string
}

const maxListedSessions = 1000

func loadSessions(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		sessions, err := database.ListSessions(db.SessionFilter{Limit: maxListedSessions})
		if err != nil {
			return errMsg{err}
		}
		return sessionsLoadedMsg{sessions}
	}
}

func loadSessionDetail(database *db.DB, cfg *config.Config, sessionID string) tea.Cmd {
	return func() tea.Msg {
		s, err := database.GetSession(sessionID)
		if err != nil {
			return errMsg{err}
		}

		reminder := ""
		if cfg != nil {
			if msg, err := messaging.Reminder(database, cfg, *s, "", time.Now()); err == nil {
				reminder = msg.Body
			}
		}

		return sessionDetailLoadedMsg{session: *s, reminder: reminder}
	}
}

func performSearch(database *db.DB, raw string) tea.Cmd {
	return func() tea.Msg {
		filters := ParseSearchQuery(raw, time.Now())

		// Minimum 2 characters to search (avoid useless single-char results)
		if len(filters.Query) < 2 && !filters.HasFilters() {
			return searchResultsMsg{query: raw, results: nil}
		}

		core := search.SearchFilters{After: filters.AfterDate, Before: filters.BeforeDate}
		if filters.Lead != "" {
			id, err := resolveLead(database, filters.Lead)
			if errors.Is(err, db.ErrNotFound) {
				// Unknown lead matches nothing
				return searchResultsMsg{query: raw, results: []search.SearchResult{}}
			}
			if err != nil {
				return errMsg{err}
			}
			core.LeadID = id
		}

		// Filters alone list every matching session
		if len(filters.Query) < 2 {
			sessions, err := database.ListSessions(db.SessionFilter{
				LeadID: core.LeadID,
				After:  core.After,
				Before: core.Before,
				Limit:  maxListedSessions,
			})
			if err != nil {
				return errMsg{err}
			}
			results := make([]search.SearchResult, len(sessions))
			for i, s := range sessions {
				results[i] = search.SearchResult{Session: s}
			}
			return searchResultsMsg{query: raw, results: results}
		}

		results, err := search.SearchWithFilters(database, filters.Query, core)
		if err != nil {
			// Half-typed FTS syntax is expected while typing
			if strings.Contains(err.Error(), "fts5") {
				return searchResultsMsg{query: raw, results: []search.SearchResult{}}
			}
			return errMsg{err}
		}
		return searchResultsMsg{query: raw, results: results}
	}
}

// resolveLead tries the filter value as typed (an id or a name), then as a
// name with underscores standing in for spaces
func resolveLead(database *db.DB, value string) (string, error) {
	id, err := database.FindLeadID(value)
	if err == nil || !errors.Is(err, db.ErrNotFound) {
		return id, err
	}
	name := strings.ReplaceAll(value, "_", " ")
	if name == value {
		return "", err
	}
	return database.FindLeadID(name)
}

func syncExports(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		sourcePath := config.ExportDir()
		if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
			return syncCompleteMsg{summary: "No exports at " + sourcePath}
		}

		result, err := importer.New(database).ImportPath(sourcePath, nil)
		if err != nil {
			return errMsg{err}
		}
		return syncCompleteMsg{summary: fmt.Sprintf("Synced: %d imported, %d unchanged, %d failed",
			result.FilesImported, result.FilesSkipped, result.FilesFailed)}
	}
}
