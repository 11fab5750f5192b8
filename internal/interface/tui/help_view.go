package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key returns to the list
	m.mode = listView
	return m, nil
}

func (m Model) viewHelp() string {
	help := `
Studio Session Manager - Help
═════════════════════════════

SESSION LIST VIEW
─────────────────
  ↑/↓, j/k     Navigate sessions
  Enter        View session details
  /            Search notes and locations
  s            Sync exports into the database
  ?            Show this help
  q            Quit

Sessions are ordered by lifecycle: active sessions soonest first,
then completed and cancelled sessions newest first.

SESSION DETAIL VIEW
───────────────────
  c            Copy reminder message to clipboard
  j/k          Scroll line by line
  d/u          Scroll half page
  g/G          Jump to top/bottom
  esc          Back to session list
  q            Back to session list

SEARCH VIEW
───────────
  Type         Enter search query (live)
  Enter        Open selected session
  ↑/↓, Ctrl+j  Navigate results
  esc          Back to session list

  Filters:     lead:ada_lovelace  after:today  before:next-friday
               date:2025-03-01

Press any key to return to session list
`

	return helpStyle.Render(help)
}
