// Package messaging renders client messages for sessions from mustache
// templates.
package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"

	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

// Message is a rendered message ready to send or copy
type Message struct {
	Template string // stored template name, empty for the built-in one
	Channel  string
	Subject  string
	Body     string
}

// Variables returns the template data for a session
func Variables(s models.Session, studioName string, now time.Time) map[string]interface{} {
	timeUntil := "date unknown"
	if at, ok := lifecycle.Timestamp(s); ok {
		timeUntil = humanize.RelTime(at, now, "ago", "from now")
	}

	return map[string]interface{}{
		"studio_name":  studioName,
		"lead_name":    fallback(s.LeadName, "there"),
		"project_name": s.ProjectName,
		"date":         s.Date,
		"time":         s.Time,
		"location":     s.Location,
		"lifecycle":    string(lifecycle.Resolve(s)),
		"status":       s.StatusLabel(),
		"time_until":   timeUntil,
	}
}

// Render fills body with the session's variables. A broken template
// degrades to a plain one-line reminder instead of failing.
func Render(body string, s models.Session, studioName string, now time.Time) string {
	out, err := mustache.Render(body, Variables(s, studioName, now))
	if err != nil {
		return plain(s, studioName)
	}
	return out
}

// Reminder renders the reminder for a session. templateName selects a
// stored template; when empty the configured default is tried and then
// the built-in template.
func Reminder(database *db.DB, cfg *config.Config, s models.Session, templateName string, now time.Time) (*Message, error) {
	name := templateName
	if name == "" {
		name = cfg.DefaultTemplate
	}

	msg := &Message{Channel: "email"}
	body := cfg.ReminderTemplate

	if name != "" {
		tpl, err := database.GetTemplate(name)
		switch {
		case err == nil:
			msg.Template = tpl.Name
			msg.Channel = fallback(tpl.Channel, msg.Channel)
			msg.Subject = Render(tpl.Subject, s, cfg.StudioName, now)
			body = tpl.Body
		case errors.Is(err, db.ErrNotFound) && templateName == "":
			// Configured default missing; use the built-in template
		default:
			return nil, fmt.Errorf("failed to load template %s: %w", name, err)
		}
	}

	if msg.Subject == "" {
		msg.Subject = fmt.Sprintf("Your session with %s on %s", cfg.StudioName, s.Date)
	}
	msg.Body = Render(body, s, cfg.StudioName, now)
	return msg, nil
}

func plain(s models.Session, studioName string) string {
	when := s.Date
	if s.Time != "" {
		when += " " + s.Time
	}
	return fmt.Sprintf("Reminder from %s: your session is on %s.", studioName, when)
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
