package messaging

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

var now = time.Date(2025, 1, 4, 15, 0, 0, 0, time.UTC)

func sampleSession() models.Session {
	return models.Session{
		ID:          "s-1",
		Date:        "2025-01-06",
		Time:        "15:00",
		Status:      "confirmed",
		Location:    "Studio B",
		LeadName:    "Ada O'Brien",
		ProjectName: "Headshots",
	}
}

func TestVariables(t *testing.T) {
	vars := Variables(sampleSession(), "Northlight", now)

	tests := map[string]string{
		"studio_name":  "Northlight",
		"lead_name":    "Ada O'Brien",
		"project_name": "Headshots",
		"date":         "2025-01-06",
		"time":         "15:00",
		"location":     "Studio B",
		"lifecycle":    "active",
		"status":       "confirmed",
		"time_until":   "2 days from now",
	}
	for key, want := range tests {
		if got := vars[key]; got != want {
			t.Errorf("%s = %v, want %q", key, got, want)
		}
	}

	bad := sampleSession()
	bad.Date = "someday"
	bad.LeadName = ""
	vars = Variables(bad, "Northlight", now)
	if vars["time_until"] != "date unknown" {
		t.Errorf("time_until for bad date = %v", vars["time_until"])
	}
	if vars["lead_name"] != "there" {
		t.Errorf("lead_name fallback = %v", vars["lead_name"])
	}
}

func TestRender(t *testing.T) {
	s := sampleSession()

	t.Run("DefaultTemplate", func(t *testing.T) {
		out := Render(config.DefaultReminderTemplate, s, "Northlight", now)
		for _, want := range []string{"Hi Ada O'Brien", "Northlight", "2025-01-06 at 15:00", "at Studio B", "Project: Headshots"} {
			if !strings.Contains(out, want) {
				t.Errorf("rendered message missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("OptionalSectionsOmitted", func(t *testing.T) {
		bare := models.Session{ID: "s-2", Date: "2025-01-06"}
		out := Render(config.DefaultReminderTemplate, bare, "Northlight", now)
		if strings.Contains(out, "Project:") || strings.Contains(out, " at ") {
			t.Errorf("empty sections should be omitted:\n%s", out)
		}
	})

	t.Run("BrokenTemplateFallsBack", func(t *testing.T) {
		out := Render("Hi {{#lead_name}}", s, "Northlight", now)
		want := "Reminder from Northlight: your session is on 2025-01-06 15:00."
		if out != want {
			t.Errorf("Render() = %q, want %q", out, want)
		}
	})
}

func TestReminder(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = database.Close() }()

	err = database.UpsertTemplate(models.MessageTemplate{
		Name:    "sms",
		Channel: "sms",
		Subject: "Session {{date}}",
		Body:    "{{studio_name}}: see you {{date}} ({{lifecycle}})",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{StudioName: "Northlight", ReminderTemplate: "Built-in for {{date}}"}
	s := sampleSession()

	t.Run("Named", func(t *testing.T) {
		msg, err := Reminder(database, cfg, s, "sms", now)
		if err != nil {
			t.Fatalf("Reminder() error = %v", err)
		}
		if msg.Channel != "sms" || msg.Template != "sms" {
			t.Errorf("msg = %+v", msg)
		}
		if msg.Body != "Northlight: see you 2025-01-06 (active)" {
			t.Errorf("Body = %q", msg.Body)
		}
		if msg.Subject != "Session 2025-01-06" {
			t.Errorf("Subject = %q", msg.Subject)
		}
	})

	t.Run("NamedMissing", func(t *testing.T) {
		_, err := Reminder(database, cfg, s, "nope", now)
		if !errors.Is(err, db.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ConfiguredDefaultMissing", func(t *testing.T) {
		withDefault := *cfg
		withDefault.DefaultTemplate = "gone"
		msg, err := Reminder(database, &withDefault, s, "", now)
		if err != nil {
			t.Fatalf("Reminder() error = %v", err)
		}
		if msg.Body != "Built-in for 2025-01-06" || msg.Template != "" {
			t.Errorf("msg = %+v", msg)
		}
	})

	t.Run("ConfiguredDefault", func(t *testing.T) {
		withDefault := *cfg
		withDefault.DefaultTemplate = "sms"
		msg, err := Reminder(database, &withDefault, s, "", now)
		if err != nil {
			t.Fatal(err)
		}
		if msg.Template != "sms" {
			t.Errorf("Template = %q, want sms", msg.Template)
		}
	})
}
