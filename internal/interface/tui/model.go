package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/models"
	"github.com/studiodesk/studiodesk/internal/core/search"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	searchView
	helpView
)

type Model struct {
	db       *db.DB
	cfg      *config.Config
	mode     viewMode
	list     list.Model
	viewport viewport.Model
	width    int
	height   int
	err      error

	// Current session data
	sessions       []models.Session
	currentSession *models.Session
	reminder       string

	// Search state
	searchInput       textinput.Model
	searchResults     []search.SearchResult
	searchSelectedIdx int
	searchViewOffset  int

	// One-line feedback shown in the footer (sync result, clipboard)
	statusMsg string
	syncing   bool
}

func New(database *db.DB, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "notes, location, lead:name, after:today"
	ti.CharLimit = 200

	return Model{
		db:          database,
		cfg:         cfg,
		mode:        listView,
		searchInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return loadSessions(m.db)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.sessions != nil {
			m.list.SetSize(msg.Width, msg.Height-1)
		}
		if m.currentSession != nil {
			m.viewport = createViewport(*m.currentSession, m.reminder, m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Search input owns every other key so q and ? can be typed
		if m.mode == searchView {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q":
			if m.mode == listView {
				return m, tea.Quit
			}
			// In other views, go back to list
			m.mode = listView
			return m, nil

		case "?":
			m.mode = helpView
			return m, nil
		}

		// Mode-specific key handling
		switch m.mode {
		case listView:
			return m.updateList(msg)
		case detailView:
			return m.updateDetail(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case tea.MouseMsg:
		if m.mode == searchView {
			switch msg.Button {
			case tea.MouseButtonWheelDown:
				return handleSearchMouseWheel(m, true), nil
			case tea.MouseButtonWheelUp:
				return handleSearchMouseWheel(m, false), nil
			}
		}
		if m.mode == detailView {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case sessionsLoadedMsg:
		cursor := 0
		if m.sessions != nil {
			cursor = m.list.Index()
		}
		m.sessions = msg.sessions
		m.list = createSessionList(msg.sessions, m.width, m.height)
		if cursor < len(msg.sessions) {
			m.list.Select(cursor)
		}
		return m, nil

	case sessionDetailLoadedMsg:
		m.currentSession = &msg.session
		m.reminder = msg.reminder
		m.viewport = createViewport(msg.session, msg.reminder, m.width, m.height)
		m.mode = detailView
		m.statusMsg = ""
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user has already typed past
		if msg.query != m.searchInput.Value() {
			return m, nil
		}
		m.searchResults = msg.results
		return m, nil

	case syncCompleteMsg:
		m.syncing = false
		m.statusMsg = msg.summary
		return m, loadSessions(m.db)

	case statusUpdatedMsg:
		m.statusMsg = msg.text
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case detailView:
		return m.viewDetail()
	case searchView:
		return m.viewSearch()
	case helpView:
		return m.viewHelp()
	}

	return ""
}
