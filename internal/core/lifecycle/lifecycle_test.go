package lifecycle

import (
	"testing"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		session    models.Session
		want       models.Lifecycle
		wantSource Source
	}{
		{"planned", models.Session{Status: "planned"}, models.LifecycleActive, SourceLegacy},
		{"confirmed", models.Session{Status: "confirmed"}, models.LifecycleActive, SourceLegacy},
		{"scheduled", models.Session{Status: "scheduled"}, models.LifecycleActive, SourceLegacy},
		{"editing", models.Session{Status: "editing"}, models.LifecycleActive, SourceLegacy},
		{"in_progress", models.Session{Status: "in_progress"}, models.LifecycleActive, SourceLegacy},
		{"completed", models.Session{Status: "completed"}, models.LifecycleCompleted, SourceLegacy},
		{"delivered", models.Session{Status: "delivered"}, models.LifecycleCompleted, SourceLegacy},
		{"in_post_processing", models.Session{Status: "in_post_processing"}, models.LifecycleCompleted, SourceLegacy},
		{"cancelled", models.Session{Status: "cancelled"}, models.LifecycleCancelled, SourceLegacy},
		{"no_show", models.Session{Status: "no_show"}, models.LifecycleCancelled, SourceLegacy},
		{"archived", models.Session{Status: "archived"}, models.LifecycleCancelled, SourceLegacy},
		{"mixed case", models.Session{Status: "Cancelled"}, models.LifecycleCancelled, SourceLegacy},
		{"upper case", models.Session{Status: "DELIVERED"}, models.LifecycleCompleted, SourceLegacy},
		{"padded label is unknown", models.Session{Status: " cancelled "}, models.LifecycleActive, SourceDefault},
		{"unknown", models.Session{Status: "mystery-status"}, models.LifecycleActive, SourceDefault},
		{"empty", models.Session{}, models.LifecycleActive, SourceDefault},
		{
			"definition wins over legacy",
			models.Session{
				Status:           "planned",
				StatusDefinition: &models.StatusDefinition{ID: "st-1", Name: "Shot", Lifecycle: models.LifecycleCompleted},
			},
			models.LifecycleCompleted,
			SourceDefinition,
		},
		{
			"empty definition lifecycle falls back",
			models.Session{
				Status:           "no_show",
				StatusDefinition: &models.StatusDefinition{ID: "st-1", Name: "Draft"},
			},
			models.LifecycleCancelled,
			SourceLegacy,
		},
		{
			"definition lifecycle returned verbatim",
			models.Session{
				StatusDefinition: &models.StatusDefinition{ID: "st-1", Lifecycle: "on_hold"},
			},
			models.Lifecycle("on_hold"),
			SourceDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := Classify(tt.session)
			if got != tt.want {
				t.Errorf("Classify() lifecycle = %q, want %q", got, tt.want)
			}
			if source != tt.wantSource {
				t.Errorf("Classify() source = %v, want %v", source, tt.wantSource)
			}
			if r := Resolve(tt.session); r != tt.want {
				t.Errorf("Resolve() = %q, want %q", r, tt.want)
			}
		})
	}
}

func TestPriority(t *testing.T) {
	if !(Priority(models.LifecycleActive) < Priority(models.LifecycleCompleted)) {
		t.Error("active should come before completed")
	}
	if !(Priority(models.LifecycleCompleted) < Priority(models.LifecycleCancelled)) {
		t.Error("completed should come before cancelled")
	}
	if Priority("on_hold") <= Priority(models.LifecycleCancelled) {
		t.Error("unknown lifecycles should come after cancelled")
	}
}

func TestCountsAndFilter(t *testing.T) {
	sessions := []models.Session{
		{ID: "a", Status: "planned"},
		{ID: "b", Status: "delivered"},
		{ID: "c", Status: "no_show"},
		{ID: "d", Status: "whatever"},
	}

	counts := Counts(sessions)
	if counts[models.LifecycleActive] != 2 {
		t.Errorf("active count = %d, want 2", counts[models.LifecycleActive])
	}
	if counts[models.LifecycleCompleted] != 1 {
		t.Errorf("completed count = %d, want 1", counts[models.LifecycleCompleted])
	}
	if counts[models.LifecycleCancelled] != 1 {
		t.Errorf("cancelled count = %d, want 1", counts[models.LifecycleCancelled])
	}

	kept := Filter(sessions, models.LifecycleActive, models.LifecycleCompleted)
	if len(kept) != 3 {
		t.Fatalf("Filter() returned %d sessions, want 3", len(kept))
	}
	for _, s := range kept {
		if s.ID == "c" {
			t.Error("Filter() kept the cancelled session")
		}
	}
}
