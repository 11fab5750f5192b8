// Package studioexport reads the JSONL export produced by the hosted studio
// backend. Each line is one record tagged with a "type" field.
package studioexport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Export holds every record parsed from one export file
type Export struct {
	FilePath  string
	FileSize  int64
	FileMtime time.Time

	Statuses  []models.StatusDefinition
	Leads     []models.Lead
	Projects  []models.Project
	Sessions  []models.Session
	Templates []models.MessageTemplate

	// Lines skipped with a warning
	Skipped int
}

// Records returns the number of records parsed
func (e *Export) Records() int {
	return len(e.Statuses) + len(e.Leads) + len(e.Projects) + len(e.Sessions) + len(e.Templates)
}

// rawStatus is the inline status definition some sessions carry
type rawStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lifecycle string `json:"lifecycle"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// rawEntry represents a raw JSONL line
type rawEntry struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// status
	Lifecycle string `json:"lifecycle,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`

	// lead / project
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty"`
	LeadID string `json:"lead_id,omitempty"`

	// session
	Date             string     `json:"date,omitempty"`
	Time             string     `json:"time,omitempty"`
	StatusID         string     `json:"status_id,omitempty"`
	StatusDefinition *rawStatus `json:"status_definition,omitempty"`
	ProjectID        string     `json:"project_id,omitempty"`
	Location         string     `json:"location,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	UpdatedAt        string     `json:"updated_at,omitempty"`

	// template
	Channel string `json:"channel,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// ParseFile parses a studio export JSONL file
func ParseFile(path string) (export *Export, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	export = &Export{
		FilePath:  path,
		FileSize:  info.Size(),
		FileMtime: info.ModTime(),
	}

	// Notes can be long; allow lines up to 10MB
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var raw rawEntry
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse JSON: %w", lineNum, err)
		}

		if err := export.add(&raw); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s line %d: %v\n", path, lineNum, err)
			export.Skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return export, nil
}

func (e *Export) add(raw *rawEntry) error {
	switch raw.Type {
	case "status":
		def := models.StatusDefinition{
			ID:        raw.ID,
			Name:      raw.Name,
			Lifecycle: models.Lifecycle(strings.ToLower(raw.Lifecycle)),
			SortOrder: raw.SortOrder,
		}
		if err := def.Validate(); err != nil {
			return err
		}
		e.Statuses = append(e.Statuses, def)

	case "lead":
		lead := models.Lead{
			ID:     raw.ID,
			Name:   raw.Name,
			Email:  raw.Email,
			Phone:  raw.Phone,
			Status: raw.Status,
		}
		if err := lead.Validate(); err != nil {
			return err
		}
		e.Leads = append(e.Leads, lead)

	case "project":
		project := models.Project{
			ID:     raw.ID,
			Name:   raw.Name,
			LeadID: raw.LeadID,
			Status: raw.Status,
		}
		if err := project.Validate(); err != nil {
			return err
		}
		e.Projects = append(e.Projects, project)

	case "session":
		s, err := parseSession(raw)
		if err != nil {
			return err
		}
		e.Sessions = append(e.Sessions, *s)

	case "template":
		tpl := models.MessageTemplate{
			ID:      raw.ID,
			Name:    raw.Name,
			Channel: raw.Channel,
			Subject: raw.Subject,
			Body:    raw.Body,
		}
		if err := tpl.Validate(); err != nil {
			return err
		}
		e.Templates = append(e.Templates, tpl)

	default:
		return fmt.Errorf("unknown record type %q", raw.Type)
	}

	return nil
}

func parseSession(raw *rawEntry) (*models.Session, error) {
	s := &models.Session{
		ID:        raw.ID,
		Date:      strings.TrimSpace(raw.Date),
		Time:      strings.TrimSpace(raw.Time),
		Status:    raw.Status,
		LeadID:    raw.LeadID,
		ProjectID: raw.ProjectID,
		Location:  raw.Location,
		Notes:     raw.Notes,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	// An inline definition wins over a bare status_id
	switch {
	case raw.StatusDefinition != nil && raw.StatusDefinition.ID != "":
		s.StatusDefinition = &models.StatusDefinition{
			ID:        raw.StatusDefinition.ID,
			Name:      raw.StatusDefinition.Name,
			Lifecycle: models.Lifecycle(strings.ToLower(raw.StatusDefinition.Lifecycle)),
			SortOrder: raw.StatusDefinition.SortOrder,
		}
	case raw.StatusID != "":
		s.StatusDefinition = &models.StatusDefinition{ID: raw.StatusID}
	}

	if raw.UpdatedAt != "" {
		t, err := time.Parse(time.RFC3339, raw.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_at: %w", err)
		}
		s.UpdatedAt = t
	}

	return s, nil
}
