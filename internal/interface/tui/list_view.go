package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

type sessionListItem struct {
	session models.Session
}

func (i sessionListItem) FilterValue() string {
	return i.session.LeadName + " " + i.session.ProjectName + " " + i.session.Location
}

func (i sessionListItem) Title() string {
	parts := []string{formatWhen(i.session)}
	if i.session.LeadName != "" {
		parts = append(parts, i.session.LeadName)
	}
	if i.session.ProjectName != "" {
		parts = append(parts, i.session.ProjectName)
	}
	return strings.Join(parts, " · ")
}

func (i sessionListItem) Description() string {
	desc := fmt.Sprintf("%s | %s", i.session.StatusLabel(), lifecycle.Resolve(i.session))
	if i.session.StatusLabel() == "" {
		desc = string(lifecycle.Resolve(i.session))
	}
	if rel := relativeWhen(i.session, time.Now()); rel != "" {
		desc += " | " + rel
	}
	if i.session.Location != "" {
		desc += " | " + i.session.Location
	}
	return desc
}

// Custom delegate to colour sessions by lifecycle
type sessionDelegate struct {
	list.DefaultDelegate
}

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	s, ok := item.(sessionListItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := s.Title()
	desc := s.Description()

	if index == m.Index() {
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	} else {
		title = lifecycleStyle(lifecycle.Resolve(s.session)).Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createSessionList(sessions []models.Session, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionListItem{session: s}
	}

	delegate := sessionDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height-1) // Reserve 1 line for help text only
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false) // Dedicated search with /

	return l
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			return m, loadSessionDetail(m.db, m.cfg, selected.session.ID)
		}
		return m, nil

	case "/":
		m.mode = searchView
		m.searchInput.Focus()
		return m, nil

	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.statusMsg = ""
		return m, syncExports(m.db)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	var helpText string
	switch {
	case m.syncing:
		helpText = "⏳ Syncing..."
	case m.statusMsg != "":
		helpText = m.statusMsg + " • ? more"
	default:
		helpText = "↑/k up • ↓/j down • enter open • / search • s sync • q quit • ? more"
	}

	if len(m.sessions) == 0 {
		return "No sessions found. Press 's' to sync.\n\n" + helpText
	}

	return m.list.View() + "\n" + helpText
}

func formatWhen(s models.Session) string {
	if s.Time == "" {
		return s.Date
	}
	return s.Date + " " + s.Time
}

func relativeWhen(s models.Session, now time.Time) string {
	at, ok := lifecycle.Timestamp(s)
	if !ok {
		return ""
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
