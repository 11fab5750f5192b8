package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiodesk/studiodesk/internal/core/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.StudioName != DefaultStudioName {
		t.Errorf("StudioName = %q, want default", cfg.StudioName)
	}
	if cfg.CalendarDays != DefaultCalendarDays {
		t.Errorf("CalendarDays = %d, want %d", cfg.CalendarDays, DefaultCalendarDays)
	}
	if cfg.HideCancelled {
		t.Error("HideCancelled should default to false")
	}
	if cfg.ReminderTemplate != DefaultReminderTemplate {
		t.Error("ReminderTemplate should default to the built-in template")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
studio_name = "Northlight Photo"
hide_cancelled = true
calendar_days = 30
default_template = "sms-reminder"
`)
	writeFile(t, dir, "reminder_template.txt", "See you {{date}}")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.StudioName != "Northlight Photo" {
		t.Errorf("StudioName = %q", cfg.StudioName)
	}
	if !cfg.HideCancelled {
		t.Error("HideCancelled = false, want true")
	}
	if cfg.CalendarDays != 30 {
		t.Errorf("CalendarDays = %d, want 30", cfg.CalendarDays)
	}
	if cfg.DefaultTemplate != "sms-reminder" {
		t.Errorf("DefaultTemplate = %q", cfg.DefaultTemplate)
	}
	if cfg.ReminderTemplate != "See you {{date}}" {
		t.Errorf("ReminderTemplate = %q", cfg.ReminderTemplate)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", "studio_name = ")

	if _, err := LoadFrom(dir); err == nil {
		t.Error("LoadFrom() should fail on invalid TOML")
	}
}

func TestLoadStatusCatalog(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    []models.StatusDefinition
		wantErr string
	}{
		{
			name: "Valid",
			content: `
statuses:
  - id: st-booked
    name: Booked
    lifecycle: Active
  - id: st-delivered
    name: Delivered
    lifecycle: completed
    sort_order: 10
`,
			want: []models.StatusDefinition{
				{ID: "st-booked", Name: "Booked", Lifecycle: models.LifecycleActive, SortOrder: 1},
				{ID: "st-delivered", Name: "Delivered", Lifecycle: models.LifecycleCompleted, SortOrder: 10},
			},
		},
		{
			name: "BadLifecycle",
			content: `
statuses:
  - id: st-hold
    name: On hold
    lifecycle: paused
`,
			wantErr: "lifecycle",
		},
		{
			name: "Duplicate",
			content: `
statuses:
  - {id: st-a, name: A, lifecycle: active}
  - {id: st-a, name: B, lifecycle: cancelled}
`,
			wantErr: "duplicate",
		},
		{
			name:    "Malformed",
			content: "statuses: [",
			wantErr: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			got, err := LoadStatusCatalog(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadStatusCatalog() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStatusCatalog() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d definitions, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("def[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
