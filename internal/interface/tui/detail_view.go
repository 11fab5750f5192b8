package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

func createViewport(s models.Session, reminder string, width, height int) viewport.Model {
	vp := viewport.New(width, height-4)
	vp.SetContent(renderSession(s, reminder, width, time.Now()))
	return vp
}

func renderSession(s models.Session, reminder string, width int, now time.Time) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	l, source := lifecycle.Classify(s)

	// Header
	b.WriteString(titleStyle.Render("Session: "+formatWhen(s)) + "\n")
	b.WriteString(labelStyle.Render("ID: ") + s.ID + "\n")
	b.WriteString(labelStyle.Render("Status: ") + orDash(s.StatusLabel()) + "\n")
	b.WriteString(labelStyle.Render("Lifecycle: ") +
		lifecycleStyle(l).UnsetPaddingLeft().Render(string(l)) +
		timestampStyle.Render(" ("+source.String()+")") + "\n")
	if rel := relativeWhen(s, now); rel != "" {
		b.WriteString(labelStyle.Render("When: ") + timestampStyle.Render(rel) + "\n")
	}
	b.WriteString(labelStyle.Render("Lead: ") + orDash(s.LeadName) + "\n")
	b.WriteString(labelStyle.Render("Project: ") + orDash(s.ProjectName) + "\n")
	b.WriteString(labelStyle.Render("Location: ") + orDash(s.Location) + "\n")
	b.WriteString(strings.Repeat("─", width) + "\n\n")

	if s.Notes != "" {
		b.WriteString(sectionStyle.Render("NOTES") + "\n")
		b.WriteString(wordwrap.String(s.Notes, width-2) + "\n\n")
	}

	if reminder != "" {
		b.WriteString(sectionStyle.Render("REMINDER") + "\n")
		b.WriteString(wordwrap.String(reminder, width-2) + "\n")
	}

	return b.String()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = listView
		m.statusMsg = ""
		return m, nil

	case "c":
		if m.reminder == "" {
			m.statusMsg = "No reminder to copy"
			return m, nil
		}
		return m, copyReminder(m.reminder)

	case "j", "down":
		m.viewport.LineDown(1)
		return m, nil

	case "k", "up":
		m.viewport.LineUp(1)
		return m, nil

	case "d":
		m.viewport.HalfViewDown()
		return m, nil

	case "u":
		m.viewport.HalfViewUp()
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func copyReminder(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusUpdatedMsg{text: "Clipboard unavailable: " + err.Error()}
		}
		return statusUpdatedMsg{text: "Reminder copied to clipboard!"}
	}
}

func (m Model) viewDetail() string {
	if m.currentSession == nil {
		return "No session loaded"
	}

	content := m.viewport.View()

	footer := fmt.Sprintf("\n%3.f%%", m.viewport.ScrollPercent()*100)
	if m.statusMsg != "" {
		footer += "  " + m.statusMsg
	}
	footer += "\n\nc: copy reminder | j/k: scroll | d/u: half page | g/G: top/bottom | esc: back | q: quit"

	return content + footer
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
