package lifecycle

import (
	"sort"
	"strings"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Timestamp combines a session's date and time into a point in time.
// A missing time means midnight. ok is false when the result does not parse.
func Timestamp(s models.Session) (t time.Time, ok bool) {
	date := strings.TrimSpace(s.Date)
	if date == "" {
		return time.Time{}, false
	}
	clock := strings.TrimSpace(s.Time)
	if clock == "" {
		clock = "00:00"
	}

	combined := date + "T" + clock
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, combined); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

type sortKey struct {
	session  models.Session
	priority int
	at       time.Time
	parsed   bool
}

// Sort returns a new slice ordered by lifecycle bucket (active, completed,
// cancelled), then by date and time: soonest first for active sessions, most
// recent first for completed and cancelled ones. Equal keys keep their input
// order. Sessions whose date or time does not parse go to the end of their
// bucket. The input slice is not modified.
func Sort(sessions []models.Session) []models.Session {
	keys := make([]sortKey, len(sessions))
	for i, s := range sessions {
		at, ok := Timestamp(s)
		keys[i] = sortKey{
			session:  s,
			priority: Priority(Resolve(s)),
			at:       at,
			parsed:   ok,
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return less(keys[i], keys[j])
	})

	out := make([]models.Session, len(keys))
	for i, k := range keys {
		out[i] = k.session
	}
	return out
}

func less(a, b sortKey) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	if a.parsed != b.parsed {
		return a.parsed
	}
	if !a.parsed {
		return false
	}
	if descending(a.priority) {
		return a.at.After(b.at)
	}
	return a.at.Before(b.at)
}

// Completed and cancelled buckets show the most recent session first
func descending(priority int) bool {
	return priority == Priority(models.LifecycleCompleted) ||
		priority == Priority(models.LifecycleCancelled)
}
