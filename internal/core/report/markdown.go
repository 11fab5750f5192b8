// Package report renders calendars and session sheets for sharing.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/calendar"
	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// CalendarMarkdown renders a calendar as a markdown document
func CalendarMarkdown(cal *calendar.Calendar, studioName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s calendar\n\n", studioName)
	fmt.Fprintf(&b, "**Range:** %s to %s  \n", cal.Range.From, cal.Range.To)
	fmt.Fprintf(&b, "**Sessions:** %d (%s)\n", cal.Total, countsLine(cal))
	if cal.Hidden > 0 {
		fmt.Fprintf(&b, "\n_%d cancelled sessions hidden_\n", cal.Hidden)
	}
	b.WriteString("\n")

	if len(cal.Days) == 0 {
		b.WriteString("No sessions scheduled.\n")
		return b.String()
	}

	for _, day := range cal.Days {
		fmt.Fprintf(&b, "## %s\n\n", dayHeading(day.Date))
		for _, s := range day.Sessions {
			b.WriteString("- ")
			b.WriteString(sessionLine(s))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SessionMarkdown renders one session as a markdown sheet
func SessionMarkdown(s models.Session, studioName string) string {
	var b strings.Builder

	title := s.ProjectName
	if title == "" {
		title = "Session " + s.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "**Session ID:** `%s`  \n", s.ID)
	fmt.Fprintf(&b, "**Studio:** %s  \n", studioName)
	fmt.Fprintf(&b, "**When:** %s  \n", when(s))
	fmt.Fprintf(&b, "**Status:** %s (%s)  \n", fallback(s.StatusLabel(), "none"), lifecycle.Resolve(s))
	if s.LeadName != "" || s.LeadID != "" {
		fmt.Fprintf(&b, "**Client:** %s  \n", fallback(s.LeadName, s.LeadID))
	}
	if s.Location != "" {
		fmt.Fprintf(&b, "**Location:** %s  \n", s.Location)
	}
	if !s.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "**Updated:** %s  \n", s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	b.WriteString("\n")

	if s.Notes != "" {
		b.WriteString("---\n\n")
		b.WriteString("## Notes\n\n")
		b.WriteString(s.Notes)
		b.WriteString("\n")
	}

	return b.String()
}

func sessionLine(s models.Session) string {
	parts := []string{fallback(s.Time, "all day")}
	if s.LeadName != "" {
		parts = append(parts, s.LeadName)
	}
	if s.ProjectName != "" {
		parts = append(parts, s.ProjectName)
	}
	line := strings.Join(parts, " · ")
	line += fmt.Sprintf(" [%s]", fallback(s.StatusLabel(), string(lifecycle.Resolve(s))))
	if s.Location != "" {
		line += " @ " + s.Location
	}
	return line
}

func countsLine(cal *calendar.Calendar) string {
	parts := make([]string, 0, len(models.Lifecycles))
	for _, l := range models.Lifecycles {
		parts = append(parts, fmt.Sprintf("%d %s", cal.Counts[l], l))
	}
	return strings.Join(parts, ", ")
}

func dayHeading(day string) string {
	t, err := time.Parse(dates.DayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("Monday, 2 January 2006")
}

func when(s models.Session) string {
	if s.Time == "" {
		return s.Date
	}
	return s.Date + " " + s.Time
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
