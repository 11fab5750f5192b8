// Package calendar aggregates sessions into per-day views.
//
// A calendar is built from three queries regardless of size: one for the
// sessions in range and one batched lookup each for the leads and projects
// they reference. Names are joined client side.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Range is an inclusive span of calendar days
type Range struct {
	From string // YYYY-MM-DD
	To   string // YYYY-MM-DD
}

// NewRange returns the range of days starting at from
func NewRange(from time.Time, days int) Range {
	if days < 1 {
		days = 1
	}
	return Range{
		From: from.Format(dates.DayLayout),
		To:   from.AddDate(0, 0, days-1).Format(dates.DayLayout),
	}
}

// Validate checks both ends are real dates in order
func (r Range) Validate() error {
	from, err := time.Parse(dates.DayLayout, r.From)
	if err != nil {
		return fmt.Errorf("invalid range start %q", r.From)
	}
	to, err := time.Parse(dates.DayLayout, r.To)
	if err != nil {
		return fmt.Errorf("invalid range end %q", r.To)
	}
	if to.Before(from) {
		return fmt.Errorf("range end %s is before start %s", r.To, r.From)
	}
	return nil
}

// Options controls what Build includes
type Options struct {
	HideCancelled bool
	LeadID        string
}

// Day is one calendar day with its sessions in lifecycle order
type Day struct {
	Date     string
	Sessions []models.Session
}

// Calendar is the aggregated view over a range
type Calendar struct {
	Range  Range
	Days   []Day // only days with sessions, ascending
	Total  int
	Counts map[models.Lifecycle]int
	Hidden int // cancelled sessions dropped by HideCancelled
}

// Build aggregates the sessions in r
func Build(database *db.DB, r Range, opts Options) (*Calendar, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	sessions, err := database.SessionsBetween(r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	cal := &Calendar{Range: r, Counts: make(map[models.Lifecycle]int)}

	var kept []models.Session
	for _, s := range sessions {
		if opts.LeadID != "" && s.LeadID != opts.LeadID {
			continue
		}
		if opts.HideCancelled && lifecycle.Resolve(s) == models.LifecycleCancelled {
			cal.Hidden++
			continue
		}
		kept = append(kept, s)
	}

	if err := joinNames(database, kept); err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.Session)
	for _, s := range kept {
		byDay[s.Date] = append(byDay[s.Date], s)
		cal.Counts[lifecycle.Resolve(s)]++
	}
	cal.Total = len(kept)

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	for _, d := range days {
		cal.Days = append(cal.Days, Day{Date: d, Sessions: lifecycle.Sort(byDay[d])})
	}

	return cal, nil
}

// joinNames fills LeadName and ProjectName in place
func joinNames(database *db.DB, sessions []models.Session) error {
	leadIDs := uniqueIDs(sessions, func(s models.Session) string { return s.LeadID })
	projectIDs := uniqueIDs(sessions, func(s models.Session) string { return s.ProjectID })

	leads, err := database.LeadsByIDs(leadIDs)
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}
	projects, err := database.ProjectsByIDs(projectIDs)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range sessions {
		if l, ok := leads[sessions[i].LeadID]; ok {
			sessions[i].LeadName = l.Name
		}
		if p, ok := projects[sessions[i].ProjectID]; ok {
			sessions[i].ProjectName = p.Name
		}
	}
	return nil
}

func uniqueIDs(sessions []models.Session, key func(models.Session) string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range sessions {
		id := key(s)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
