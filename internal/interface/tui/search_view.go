package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
)

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.mode = listView
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.searchResults = nil
		m.searchSelectedIdx = 0
		m.searchViewOffset = 0
		return m, nil

	case "enter":
		// Open selected session
		if len(m.searchResults) > 0 && m.searchSelectedIdx < len(m.searchResults) {
			sessionID := m.searchResults[m.searchSelectedIdx].Session.ID
			return m, loadSessionDetail(m.db, m.cfg, sessionID)
		}
		return m, nil

	// Navigation: Use Ctrl+j or arrow keys (allow j/k to be typed in search)
	// Note: Ctrl+k is left for textinput to handle (kills rest of line)
	case "ctrl+j", "down":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx++
			if m.searchSelectedIdx >= len(m.searchResults) {
				m.searchSelectedIdx = len(m.searchResults) - 1
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil

	case "up":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx--
			if m.searchSelectedIdx < 0 {
				m.searchSelectedIdx = 0
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil
	}

	// Update text input (all other keys including j/k/q go here)
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Perform live search on every keystroke
	query := m.searchInput.Value()
	m.searchSelectedIdx = 0
	m.searchViewOffset = 0 // Reset scroll on new search
	return m, tea.Batch(cmd, performSearch(m.db, query))
}

func (m Model) viewSearch() string {
	var b strings.Builder

	// Header with search input - ALWAYS at top
	b.WriteString(searchHeaderStyle.Render("Search: "))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 80))
	b.WriteString("\n\n")

	// Results
	if m.searchResults == nil {
		b.WriteString(searchMetaStyle.Render("Type to search (minimum 2 characters)"))
	} else if len(m.searchResults) == 0 {
		b.WriteString(searchMetaStyle.Render("No results found"))
	} else {
		b.WriteString(searchMetaStyle.Render(fmt.Sprintf("Found %d sessions:", len(m.searchResults))))
		b.WriteString("\n\n")

		// Calculate visible window
		startIdx := m.searchViewOffset
		endIdx := startIdx + visibleSearchResults(m.height)
		if endIdx > len(m.searchResults) {
			endIdx = len(m.searchResults)
		}

		text := ParseSearchQuery(m.searchInput.Value(), time.Now()).Query

		for i := startIdx; i < endIdx; i++ {
			result := m.searchResults[i]
			item := sessionListItem{session: result.Session}

			headline := item.Title()
			prefix := "  "
			if i == m.searchSelectedIdx {
				prefix = "► "
				headline = searchSelectedStyle.Render(headline)
			} else {
				headline = lifecycleStyle(lifecycle.Resolve(result.Session)).UnsetPaddingLeft().Render(headline)
			}

			b.WriteString(prefix + headline + "\n")
			b.WriteString("  " + searchMetaStyle.Render(item.Description()) + "\n")

			snippet := result.Snippet
			if snippet == "" {
				snippet = result.Session.Notes
			}
			if snippet != "" {
				b.WriteString("    " + highlightQuery(firstLine(snippet, 100), text))
			}
			b.WriteString("\n\n")
		}

		// Show scroll indicators
		if startIdx > 0 {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results above\n", startIdx)))
		}
		if endIdx < len(m.searchResults) {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results below\n", len(m.searchResults)-endIdx)))
		}
	}

	// Footer with comprehensive help
	b.WriteString("\n\n")
	if len(m.searchResults) > 0 {
		b.WriteString("Ctrl+j or ↑↓: navigate | Enter: open | Ctrl+k: kill line | esc: back")
	} else {
		b.WriteString("Type to search (min 2 chars) | Ctrl+k: kill line | esc: back")
	}
	b.WriteString("\n")
	b.WriteString(searchMetaStyle.Render("Filters: lead:ada_lovelace | after:today | before:next-friday | date:2025-03-01"))

	return b.String()
}

func highlightQuery(text, query string) string {
	if query == "" {
		return text
	}

	// Simple case-insensitive highlighting
	lower := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	idx := strings.Index(lower, lowerQuery)
	if idx == -1 {
		return text
	}

	// Highlight the match
	before := text[:idx]
	match := text[idx : idx+len(query)]
	after := text[idx+len(query):]

	return before + searchMatchStyle.Render(match) + after
}

// firstLine returns the first line of s, truncated to max display cells
func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return ansi.Truncate(strings.TrimSpace(s), max, "...")
}
