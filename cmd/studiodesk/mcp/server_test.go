package mcp

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

func setupServerDB(t *testing.T) *db.DB {
	t.Helper()

	// Keep syncDatabase away from the real home directory
	t.Setenv("HOME", t.TempDir())

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	sessions := []models.Session{
		{ID: "done", Date: "2025-01-07", Status: "delivered", Notes: "album delivered"},
		{ID: "next", Date: "2025-01-05", Time: "10:00", Status: "confirmed", Notes: "album proofs"},
		{ID: "void", Date: "2025-01-09", Status: "cancelled"},
	}
	for _, s := range sessions {
		if err := database.UpsertSession(s); err != nil {
			t.Fatal(err)
		}
	}
	return database
}

func callTool(t *testing.T, handler toolHandler, args map[string]interface{}) string {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestListSessionsTool(t *testing.T) {
	database := setupServerDB(t)

	out := callTool(t, makeListSessionsHandler(database), map[string]interface{}{})

	var resp struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}

	want := []string{"next", "done", "void"}
	if len(resp.Sessions) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(resp.Sessions), len(want))
	}
	for i, id := range want {
		if resp.Sessions[i].SessionID != id {
			t.Errorf("sessions[%d] = %s, want %s", i, resp.Sessions[i].SessionID, id)
		}
	}
	if resp.Sessions[0].Lifecycle != "active" {
		t.Errorf("lifecycle = %s, want active", resp.Sessions[0].Lifecycle)
	}
}

func TestListSessionsTool_LifecycleFilter(t *testing.T) {
	database := setupServerDB(t)

	out := callTool(t, makeListSessionsHandler(database), map[string]interface{}{"lifecycle": "cancelled"})

	var resp struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].SessionID != "void" {
		t.Errorf("sessions = %+v", resp.Sessions)
	}
}

func TestGetSessionTool(t *testing.T) {
	database := setupServerDB(t)

	out := callTool(t, makeGetSessionHandler(database), map[string]interface{}{"session_id": "done"})

	var detail SessionDetail
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Lifecycle != "completed" || detail.LifecycleSource != "legacy" {
		t.Errorf("detail = %+v", detail)
	}

	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]interface{}{"session_id": "missing"}
	result, err := makeGetSessionHandler(database)(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown session")
	}
}

func TestSearchSessionsTool(t *testing.T) {
	database := setupServerDB(t)

	out := callTool(t, makeSearchSessionsHandler(database), map[string]interface{}{"query": "album"})

	var resp struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Sessions) != 2 || resp.Sessions[0].SessionID != "next" {
		t.Errorf("sessions = %+v", resp.Sessions)
	}
}

func TestCalendarTool(t *testing.T) {
	database := setupServerDB(t)
	cfg := &config.Config{CalendarDays: 7, HideCancelled: true}

	out := callTool(t, makeCalendarHandler(database, cfg), map[string]interface{}{"from": "2025-01-05"})

	var resp struct {
		Total  int           `json:"total"`
		Hidden int           `json:"hidden"`
		Days   []CalendarDay `json:"days"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || resp.Hidden != 1 || len(resp.Days) != 2 {
		t.Errorf("calendar = %+v", resp)
	}
}
