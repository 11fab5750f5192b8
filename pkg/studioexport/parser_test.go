package studioexport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

func TestParseFile(t *testing.T) {
	export, err := ParseFile("testdata/sample.jsonl")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if len(export.Statuses) != 2 {
		t.Errorf("Status count = %v, want 2", len(export.Statuses))
	}
	if len(export.Leads) != 1 || len(export.Projects) != 1 || len(export.Templates) != 1 {
		t.Errorf("leads/projects/templates = %d/%d/%d, want 1/1/1",
			len(export.Leads), len(export.Projects), len(export.Templates))
	}

	// sess-4 has no date and the invoice line has an unknown type
	if len(export.Sessions) != 3 {
		t.Fatalf("Session count = %v, want 3", len(export.Sessions))
	}
	if export.Skipped != 2 {
		t.Errorf("Skipped = %v, want 2", export.Skipped)
	}
	if export.Records() != 8 {
		t.Errorf("Records() = %v, want 8", export.Records())
	}
}

func TestParseFile_SessionFields(t *testing.T) {
	export, err := ParseFile("testdata/sample.jsonl")
	if err != nil {
		t.Fatal(err)
	}

	byID := make(map[string]models.Session)
	for _, s := range export.Sessions {
		byID[s.ID] = s
	}

	legacy := byID["sess-1"]
	if legacy.Status != "completed" || legacy.StatusDefinition != nil {
		t.Errorf("sess-1 = %+v, want legacy status only", legacy)
	}
	if legacy.Location != "Harbour pier" || legacy.ProjectID != "proj-1" {
		t.Errorf("sess-1 display fields = %+v", legacy)
	}

	linked := byID["sess-2"]
	if linked.StatusDefinition == nil || linked.StatusDefinition.ID != "st-booked" {
		t.Errorf("sess-2 definition = %+v, want st-booked", linked.StatusDefinition)
	}
	if linked.Time != "15:00" {
		t.Errorf("sess-2 time = %q", linked.Time)
	}
	if linked.UpdatedAt.IsZero() {
		t.Error("sess-2 updated_at not parsed")
	}

	inline := byID["sess-3"]
	if inline.StatusDefinition == nil || inline.StatusDefinition.Lifecycle != models.LifecycleCompleted {
		t.Errorf("sess-3 inline definition = %+v", inline.StatusDefinition)
	}
}

func TestParseFile_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jsonl")
	content := `{"type":"lead","id":"lead-1","name":"Ada"}` + "\n" + `{"type":"session",` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ParseFile(path)
	if err == nil {
		t.Fatal("ParseFile() should fail on malformed JSON")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
}

func TestParseFile_InvalidPath(t *testing.T) {
	_, err := ParseFile("nonexistent.jsonl")
	if err == nil {
		t.Error("ParseFile() should return error for invalid path")
	}
}

func TestParseFile_InlineLifecycleNormalised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inline.jsonl")
	content := `{"type":"session","id":"s-1","date":"2025-01-05","status_definition":{"id":"st-x","name":"Shot","lifecycle":"Completed"}}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	export, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(export.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(export.Sessions))
	}
	def := export.Sessions[0].StatusDefinition
	if def == nil || def.Lifecycle != models.LifecycleCompleted {
		t.Errorf("inline definition = %+v, want lifecycle completed", def)
	}
}
