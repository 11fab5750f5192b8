// Package lifecycle resolves session statuses to lifecycle buckets and orders
// sessions by bucket and date.
package lifecycle

import (
	"strings"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Source records which strategy produced a session's lifecycle
type Source int

const (
	// SourceDefinition means the linked status definition was authoritative
	SourceDefinition Source = iota
	// SourceLegacy means the legacy status string matched the fallback table
	SourceLegacy
	// SourceDefault means nothing matched and the session defaulted to active
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceDefinition:
		return "definition"
	case SourceLegacy:
		return "legacy"
	default:
		return "default"
	}
}

// Legacy status labels, lower-case
var legacyStatuses = map[string]models.Lifecycle{
	"planned":     models.LifecycleActive,
	"confirmed":   models.LifecycleActive,
	"scheduled":   models.LifecycleActive,
	"editing":     models.LifecycleActive,
	"in_progress": models.LifecycleActive,

	"completed":          models.LifecycleCompleted,
	"delivered":          models.LifecycleCompleted,
	"in_post_processing": models.LifecycleCompleted,

	"cancelled": models.LifecycleCancelled,
	"no_show":   models.LifecycleCancelled,
	"archived":  models.LifecycleCancelled,
}

// Resolve returns the lifecycle bucket for a session. It never fails:
// statuses nobody recognises are treated as active.
func Resolve(s models.Session) models.Lifecycle {
	l, _ := Classify(s)
	return l
}

// Classify is Resolve plus the strategy that decided the bucket
func Classify(s models.Session) (models.Lifecycle, Source) {
	if s.StatusDefinition != nil && s.StatusDefinition.Lifecycle != "" {
		return s.StatusDefinition.Lifecycle, SourceDefinition
	}
	if l, ok := ClassifyLegacy(s.Status); ok {
		return l, SourceLegacy
	}
	return models.LifecycleActive, SourceDefault
}

// ClassifyLegacy maps a free-text status to a bucket, case-insensitively.
// Surrounding whitespace is not stripped, so " cancelled " is unknown.
// The bool is false when the label is not in the table.
func ClassifyLegacy(status string) (models.Lifecycle, bool) {
	l, ok := legacyStatuses[strings.ToLower(status)]
	return l, ok
}

// Priority is the primary sort key. Lifecycles outside the known three
// (only reachable through a hand-edited status definition) sort last.
func Priority(l models.Lifecycle) int {
	switch l {
	case models.LifecycleActive:
		return 1
	case models.LifecycleCompleted:
		return 2
	case models.LifecycleCancelled:
		return 3
	default:
		return 4
	}
}

// Counts tallies sessions per lifecycle bucket
func Counts(sessions []models.Session) map[models.Lifecycle]int {
	counts := make(map[models.Lifecycle]int, len(models.Lifecycles))
	for _, s := range sessions {
		counts[Resolve(s)]++
	}
	return counts
}

// Filter returns the sessions whose bucket is in keep, preserving order
func Filter(sessions []models.Session, keep ...models.Lifecycle) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		l := Resolve(s)
		for _, k := range keep {
			if l == k {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
