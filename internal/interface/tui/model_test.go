package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.UpsertLead(models.Lead{ID: "lead-1", Name: "Ada Lovelace"}); err != nil {
		t.Fatal(err)
	}
	sessions := []models.Session{
		{ID: "s-done", Date: "2025-01-02", Status: "delivered", LeadID: "lead-1"},
		{ID: "s-late", Date: "2025-03-01", Status: "confirmed", Location: "Harbour"},
		{ID: "s-soon", Date: "2025-02-01", Time: "09:30", Status: "planned", LeadID: "lead-1", Notes: "engagement shoot at the pier"},
		{ID: "s-off", Date: "2025-02-10", Status: "no_show"},
	}
	for _, s := range sessions {
		if err := database.UpsertSession(s); err != nil {
			t.Fatalf("UpsertSession(%s) error = %v", s.ID, err)
		}
	}

	cfg := &config.Config{
		StudioName:       "Test Studio",
		ReminderTemplate: config.DefaultReminderTemplate,
	}

	m := New(database, cfg)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

// run executes a command and feeds its message back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoadsSessionsInLifecycleOrder(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.Init())

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}

	want := []string{"s-soon", "s-late", "s-done", "s-off"}
	items := m.list.Items()
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, id := range want {
		got := items[i].(sessionListItem).session.ID
		if got != id {
			t.Errorf("item %d = %s, want %s", i, got, id)
		}
	}
}

func TestModelOpensDetailWithReminder(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.Init())

	next, cmd := m.Update(keyMsg("enter"))
	m = run(t, next.(Model), cmd)

	if m.mode != detailView {
		t.Fatalf("mode = %v, want detailView", m.mode)
	}
	if m.currentSession == nil || m.currentSession.ID != "s-soon" {
		t.Fatalf("currentSession = %+v, want s-soon", m.currentSession)
	}
	if !strings.Contains(m.reminder, "Ada Lovelace") {
		t.Errorf("reminder should greet the lead, got %q", m.reminder)
	}
	if !strings.Contains(m.reminder, "Test Studio") {
		t.Errorf("reminder should name the studio, got %q", m.reminder)
	}

	next, _ = m.Update(keyMsg("esc"))
	if next.(Model).mode != listView {
		t.Error("esc should return to the list")
	}
}

func TestModelSearch(t *testing.T) {
	m := newTestModel(t)
	m = run(t, m, m.Init())

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	if m.mode != searchView {
		t.Fatalf("mode = %v, want searchView", m.mode)
	}

	// q must be typeable in search
	next, _ = m.Update(keyMsg("q"))
	m = next.(Model)
	if m.mode != searchView || m.searchInput.Value() != "q" {
		t.Fatalf("q should be typed into the search box, got mode %v value %q", m.mode, m.searchInput.Value())
	}
	m.searchInput.SetValue("")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"full text", "pier", []string{"s-soon"}},
		{"lead filter only", "lead:ada_lovelace", []string{"s-soon", "s-done"}},
		{"date range only", "after:2025-02-01 before:2025-02-28", []string{"s-soon", "s-off"}},
		{"unknown lead", "lead:nobody", []string{}},
		{"too short", "p", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := m
			sm.searchInput.SetValue(tt.query)
			sm = run(t, sm, performSearch(sm.db, tt.query))

			if sm.err != nil {
				t.Fatalf("unexpected error: %v", sm.err)
			}
			if tt.want == nil {
				if sm.searchResults != nil {
					t.Errorf("expected no search, got %d results", len(sm.searchResults))
				}
				return
			}
			if len(sm.searchResults) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(sm.searchResults), len(tt.want))
			}
			for i, id := range tt.want {
				if got := sm.searchResults[i].Session.ID; got != id {
					t.Errorf("result %d = %s, want %s", i, got, id)
				}
			}
		})
	}
}

func TestModelIgnoresStaleSearchResults(t *testing.T) {
	m := newTestModel(t)
	m.mode = searchView
	m.searchInput.SetValue("pier shoot")

	stale := performSearch(m.db, "pier")()
	next, _ := m.Update(stale)
	if next.(Model).searchResults != nil {
		t.Error("results for an outdated query should be dropped")
	}
}

func TestModelSyncWithoutExports(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m := newTestModel(t)
	m = run(t, m, m.Init())

	next, cmd := m.Update(keyMsg("s"))
	m = next.(Model)
	if !m.syncing {
		t.Fatal("s should start a sync")
	}

	m = run(t, m, cmd)
	if m.syncing {
		t.Error("sync should be finished")
	}
	if !strings.HasPrefix(m.statusMsg, "No exports at") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestAdjustSearchViewport(t *testing.T) {
	m := Model{height: 16} // room for 2 results
	m.searchSelectedIdx = 5
	m = adjustSearchViewport(m)
	if m.searchViewOffset != 4 {
		t.Errorf("offset = %d, want 4", m.searchViewOffset)
	}

	m.searchSelectedIdx = 1
	m = adjustSearchViewport(m)
	if m.searchViewOffset != 1 {
		t.Errorf("offset = %d, want 1", m.searchViewOffset)
	}
}

func TestRenderSession(t *testing.T) {
	s := models.Session{
		ID:       "s-1",
		Date:     "2025-02-01",
		Time:     "09:30",
		Status:   "mystery",
		LeadName: "Ada Lovelace",
		Notes:    strings.Repeat("word ", 40),
	}

	out := renderSession(s, "See you soon", 40, mustTime(t, "2025-01-31T09:30:00Z"))

	for _, want := range []string{"2025-02-01 09:30", "Ada Lovelace", "active", "(default)", "NOTES", "REMINDER", "See you soon"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered session missing %q", want)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "word") && len(line) > 40 {
			t.Errorf("notes not wrapped: %q", line)
		}
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestPerformSearchLeadWithUnderscoreID(t *testing.T) {
	m := newTestModel(t)

	if err := m.db.UpsertLead(models.Lead{ID: "lead_2", Name: "Grace Hopper"}); err != nil {
		t.Fatal(err)
	}
	if err := m.db.UpsertSession(models.Session{ID: "s-grace", Date: "2025-04-01", Status: "planned", LeadID: "lead_2"}); err != nil {
		t.Fatal(err)
	}

	for _, query := range []string{"lead:lead_2", "lead:grace_hopper", "lead:Grace_Hopper"} {
		t.Run(query, func(t *testing.T) {
			msg, ok := performSearch(m.db, query)().(searchResultsMsg)
			if !ok {
				t.Fatalf("expected searchResultsMsg")
			}
			if len(msg.results) != 1 || msg.results[0].Session.ID != "s-grace" {
				t.Errorf("results = %+v, want s-grace", msg.results)
			}
		})
	}
}
