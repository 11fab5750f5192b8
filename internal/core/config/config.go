package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultReminderTemplate = `Hi {{{lead_name}}},

This is a reminder from {{{studio_name}}} about your session on {{date}}{{#time}} at {{time}}{{/time}}{{#location}} at {{{location}}}{{/location}} ({{time_until}}).{{#project_name}} Project: {{{project_name}}}.{{/project_name}}

Reply to this message if anything has changed.`

const (
	DefaultStudioName   = "Our studio"
	DefaultCalendarDays = 14
)

type Config struct {
	StudioName       string
	HideCancelled    bool   // Hide cancelled sessions from the calendar
	CalendarDays     int    // Default calendar window
	DefaultTemplate  string // Stored template name used by remind
	ReminderTemplate string // Fallback body when no stored template applies
}

type tomlConfig struct {
	StudioName      string `toml:"studio_name"`
	HideCancelled   *bool  `toml:"hide_cancelled"`
	CalendarDays    int    `toml:"calendar_days"`
	DefaultTemplate string `toml:"default_template"`
}

// Dir returns ~/.config/studiodesk
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studiodesk"), nil
}

// ExportDir is where sync looks for export files by default
func ExportDir() string {
	dir, err := Dir()
	if err != nil {
		return filepath.Join("~", ".config", "studiodesk", "exports")
	}
	return filepath.Join(dir, "exports")
}

// Load reads config from ~/.config/studiodesk/
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return defaults(), nil // Use defaults
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.toml and reminder_template.txt from dir. Missing
// files leave the defaults in place.
func LoadFrom(configDir string) (*Config, error) {
	cfg := defaults()

	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "reminder_template.txt")

	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
			return nil, err
		}
		if tc.StudioName != "" {
			cfg.StudioName = tc.StudioName
		}
		if tc.HideCancelled != nil {
			cfg.HideCancelled = *tc.HideCancelled
		}
		if tc.CalendarDays > 0 {
			cfg.CalendarDays = tc.CalendarDays
		}
		cfg.DefaultTemplate = tc.DefaultTemplate
	}

	// If custom template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ReminderTemplate = string(data)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		StudioName:       DefaultStudioName,
		CalendarDays:     DefaultCalendarDays,
		ReminderTemplate: DefaultReminderTemplate,
	}
}
