package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/studiodesk/studiodesk/internal/core/calendar"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/importer"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
	"github.com/studiodesk/studiodesk/internal/core/search"
)

// ListSessionsArgs defines arguments for the list_sessions tool
type ListSessionsArgs struct {
	Limit     int    `json:"limit,omitempty"`
	LeadID    string `json:"lead_id,omitempty"`
	Lifecycle string `json:"lifecycle,omitempty"`
	After     string `json:"after,omitempty"`
	Before    string `json:"before,omitempty"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID string `json:"session_id"`
}

// SearchSessionsArgs defines arguments for the search_sessions tool
type SearchSessionsArgs struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	LeadID string `json:"lead_id,omitempty"`
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// CalendarArgs defines arguments for the calendar tool
type CalendarArgs struct {
	From          string `json:"from,omitempty"`
	Days          int    `json:"days,omitempty"`
	HideCancelled *bool  `json:"hide_cancelled,omitempty"`
}

// SessionSummary represents a session in tool results
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Status    string `json:"status,omitempty"`
	Lifecycle string `json:"lifecycle"`
	Lead      string `json:"lead,omitempty"`
	Project   string `json:"project,omitempty"`
	Location  string `json:"location,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
}

// SessionDetail adds notes and bookkeeping to a summary
type SessionDetail struct {
	SessionSummary
	LifecycleSource string `json:"lifecycle_source"`
	LeadID          string `json:"lead_id,omitempty"`
	ProjectID       string `json:"project_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
	UpdatedAt       string `json:"updated_at"`
}

// CalendarDay is one day in the calendar tool result
type CalendarDay struct {
	Date     string           `json:"date"`
	Sessions []SessionSummary `json:"sessions"`
}

// StartServer starts the MCP server
func StartServer(dbPath string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Printf("Error closing database: %v", closeErr)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s := server.NewMCPServer(
		"studiodesk",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_sessions",
		mcp.WithDescription("List studio sessions in lifecycle order: active sessions soonest first, then completed and cancelled sessions most recent first"),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
		mcp.WithString("lead_id",
			mcp.Description("Filter by lead id")),
		mcp.WithString("lifecycle",
			mcp.Description("Filter by lifecycle: active, completed or cancelled")),
		mcp.WithString("after",
			mcp.Description("Only sessions on or after this date (YYYY-MM-DD or natural language like 'today')")),
		mcp.WithString("before",
			mcp.Description("Only sessions on or before this date")),
	)
	s.AddTool(listTool, makeListSessionsHandler(database))

	detailTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve one session with its status, lifecycle, lead, project and notes"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id")),
	)
	s.AddTool(detailTool, makeGetSessionHandler(database))

	searchTool := mcp.NewTool("search_sessions",
		mcp.WithDescription("Full-text search over session notes and locations. Results are in lifecycle order."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term")),
		mcp.WithNumber("limit",
			mcp.Description("Max number of sessions to return (default: 10)")),
		mcp.WithString("lead_id",
			mcp.Description("Filter by lead id")),
		mcp.WithString("after",
			mcp.Description("Only sessions on or after this date")),
		mcp.WithString("before",
			mcp.Description("Only sessions on or before this date")),
	)
	s.AddTool(searchTool, makeSearchSessionsHandler(database))

	calendarTool := mcp.NewTool("calendar",
		mcp.WithDescription("Sessions grouped by day over a date range"),
		mcp.WithString("from",
			mcp.Description("First day (default: today)")),
		mcp.WithNumber("days",
			mcp.Description("Number of days (default from config)")),
		mcp.WithBoolean("hide_cancelled",
			mcp.Description("Hide cancelled sessions (default from config)")),
	)
	s.AddTool(calendarTool, makeCalendarHandler(database, cfg))

	return server.ServeStdio(s)
}

// syncDatabase imports any new export files before running tool queries
func syncDatabase(ctx context.Context, database *db.DB) error {
	sourcePath := config.ExportDir()
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return nil
	}

	// Silent, no progress output for MCP
	imp := importer.New(database)
	if _, err := imp.ImportPath(sourcePath, nil); err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}
	return nil
}

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func decodeArgs(request mcp.CallToolRequest, dst interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, dst)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func makeListSessionsHandler(database *db.DB) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := syncDatabase(ctx, database); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
		}

		var args ListSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		filter := db.SessionFilter{LeadID: args.LeadID, Limit: args.Limit}
		if filter.Limit == 0 {
			filter.Limit = 20
		}
		if args.Lifecycle != "" {
			lc := models.Lifecycle(args.Lifecycle)
			if !lc.Valid() {
				return mcp.NewToolResultError(fmt.Sprintf("unknown lifecycle %q", args.Lifecycle)), nil
			}
			filter.Lifecycles = []models.Lifecycle{lc}
		}
		var err error
		if filter.After, filter.Before, err = dayRange(args.After, args.Before); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sessions, err := database.ListSessions(filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}

		summaries := make([]SessionSummary, 0, len(sessions))
		for _, s := range sessions {
			summaries = append(summaries, summarize(s))
		}
		return jsonResult(map[string]interface{}{"sessions": summaries})
	}
}

func makeGetSessionHandler(database *db.DB) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := syncDatabase(ctx, database); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
		}

		var args GetSessionArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		s, err := database.GetSession(args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("session not found: %v", err)), nil
		}

		_, source := lifecycle.Classify(*s)
		return jsonResult(SessionDetail{
			SessionSummary:  summarize(*s),
			LifecycleSource: source.String(),
			LeadID:          s.LeadID,
			ProjectID:       s.ProjectID,
			Notes:           s.Notes,
			UpdatedAt:       s.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func makeSearchSessionsHandler(database *db.DB) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := syncDatabase(ctx, database); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
		}

		var args SearchSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 10
		}

		filters := search.SearchFilters{LeadID: args.LeadID}
		var err error
		if filters.After, filters.Before, err = dayRange(args.After, args.Before); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results, err := search.SearchWithFilters(database, args.Query, filters)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		summaries := make([]SessionSummary, 0, len(results))
		for _, r := range results {
			if len(summaries) >= limit {
				break
			}
			summary := summarize(r.Session)
			summary.Snippet = r.Snippet
			summaries = append(summaries, summary)
		}
		return jsonResult(map[string]interface{}{"sessions": summaries})
	}
}

func makeCalendarHandler(database *db.DB, cfg *config.Config) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := syncDatabase(ctx, database); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sync failed: %v", err)), nil
		}

		var args CalendarArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		now := time.Now()
		from := now
		if args.From != "" {
			t, err := dates.Parse(args.From, now)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			from = t
		}
		days := args.Days
		if days == 0 {
			days = cfg.CalendarDays
		}
		opts := calendar.Options{HideCancelled: cfg.HideCancelled}
		if args.HideCancelled != nil {
			opts.HideCancelled = *args.HideCancelled
		}

		cal, err := calendar.Build(database, calendar.NewRange(from, days), opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("calendar failed: %v", err)), nil
		}

		out := make([]CalendarDay, 0, len(cal.Days))
		for _, d := range cal.Days {
			day := CalendarDay{Date: d.Date}
			for _, s := range d.Sessions {
				day.Sessions = append(day.Sessions, summarize(s))
			}
			out = append(out, day)
		}
		return jsonResult(map[string]interface{}{
			"from":   cal.Range.From,
			"to":     cal.Range.To,
			"total":  cal.Total,
			"hidden": cal.Hidden,
			"days":   out,
		})
	}
}

func summarize(s models.Session) SessionSummary {
	return SessionSummary{
		SessionID: s.ID,
		Date:      s.Date,
		Time:      s.Time,
		Status:    s.StatusLabel(),
		Lifecycle: string(lifecycle.Resolve(s)),
		Lead:      s.LeadName,
		Project:   s.ProjectName,
		Location:  s.Location,
	}
}

// dayRange normalises optional after/before dates to YYYY-MM-DD
func dayRange(after, before string) (string, string, error) {
	now := time.Now()
	var err error
	if after != "" {
		if after, err = dates.Day(after, now); err != nil {
			return "", "", err
		}
	}
	if before != "" {
		if before, err = dates.Day(before, now); err != nil {
			return "", "", err
		}
	}
	return after, before, nil
}
