package tui

const (
	linesPerResult = 4 // Headline, meta line, snippet, spacing
	reservedLines  = 8 // Header + footer lines
)

// visibleSearchResults is how many search results fit on a screen of the given height
func visibleSearchResults(height int) int {
	n := (height - reservedLines) / linesPerResult
	if n < 2 {
		return 2
	}
	return n
}

// adjustSearchViewport ensures the selected search result is visible within the viewport.
func adjustSearchViewport(m Model) Model {
	maxVisibleResults := visibleSearchResults(m.height)

	// Scroll down if selected item is below visible window
	if m.searchSelectedIdx >= m.searchViewOffset+maxVisibleResults {
		m.searchViewOffset = m.searchSelectedIdx - maxVisibleResults + 1
	}

	// Scroll up if selected item is above visible window
	if m.searchSelectedIdx < m.searchViewOffset {
		m.searchViewOffset = m.searchSelectedIdx
	}

	return m
}

// handleSearchMouseWheel moves the search selection one result per wheel tick
func handleSearchMouseWheel(m Model, wheelDown bool) Model {
	if len(m.searchResults) == 0 {
		return m
	}

	if wheelDown {
		m.searchSelectedIdx++
		if m.searchSelectedIdx >= len(m.searchResults) {
			m.searchSelectedIdx = len(m.searchResults) - 1
		}
	} else {
		m.searchSelectedIdx--
		if m.searchSelectedIdx < 0 {
			m.searchSelectedIdx = 0
		}
	}

	return adjustSearchViewport(m)
}
