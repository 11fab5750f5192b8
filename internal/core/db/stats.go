package db

import (
	"time"

	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Stats represents database statistics
type Stats struct {
	TotalSessions  int
	TotalLeads     int
	TotalProjects  int
	TotalStatuses  int
	TotalTemplates int

	ByLifecycle map[models.Lifecycle]int
	// Sessions whose status matched neither a definition nor a known
	// legacy label and were counted as active
	UnrecognizedStatus int

	NextSession      *models.Session
	BusiestLead      string
	BusiestLeadCount int
}

// GetStats returns comprehensive database statistics. now decides which
// active session counts as the next one.
func (db *DB) GetStats(now time.Time) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM sessions", &stats.TotalSessions},
		{"SELECT COUNT(*) FROM leads", &stats.TotalLeads},
		{"SELECT COUNT(*) FROM projects", &stats.TotalProjects},
		{"SELECT COUNT(*) FROM session_statuses", &stats.TotalStatuses},
		{"SELECT COUNT(*) FROM message_templates", &stats.TotalTemplates},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	sessions, err := db.ListSessions(SessionFilter{})
	if err != nil {
		return nil, err
	}

	stats.ByLifecycle = lifecycle.Counts(sessions)

	perLead := map[string]int{}
	for i, s := range sessions {
		l, source := lifecycle.Classify(s)
		if source == lifecycle.SourceDefault {
			stats.UnrecognizedStatus++
		}
		if s.LeadName != "" {
			perLead[s.LeadName]++
		}
		if stats.NextSession == nil && l == models.LifecycleActive {
			if at, ok := lifecycle.Timestamp(s); ok && !at.Before(dayStart(now)) {
				stats.NextSession = &sessions[i]
			}
		}
	}

	// Ties resolve alphabetically so output is stable
	for name, n := range perLead {
		if n > stats.BusiestLeadCount || (n == stats.BusiestLeadCount && name < stats.BusiestLead) {
			stats.BusiestLead = name
			stats.BusiestLeadCount = n
		}
	}

	return stats, nil
}

// Session timestamps carry no zone, so compare against the wall-clock day
func dayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
