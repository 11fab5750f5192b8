package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

var (
	listLimit     int
	listLead      string
	listProject   string
	listAfter     string
	listBefore    string
	listLifecycle []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions in lifecycle order",
	Long: `List sessions grouped by lifecycle: active sessions soonest first, then
completed and cancelled sessions most recent first.

Dates accept natural language ("today", "next friday") or YYYY-MM-DD.

Examples:
  studiodesk list
  studiodesk list --limit 10
  studiodesk list --lead "Ada Lovelace" --after today
  studiodesk list --lifecycle completed,cancelled`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of sessions to display")
	listCmd.Flags().StringVar(&listLead, "lead", "", "Filter by lead id or name")
	listCmd.Flags().StringVar(&listProject, "project", "", "Filter by project id")
	listCmd.Flags().StringVar(&listAfter, "after", "", "Only sessions on or after this date")
	listCmd.Flags().StringVar(&listBefore, "before", "", "Only sessions on or before this date")
	listCmd.Flags().StringSliceVar(&listLifecycle, "lifecycle", nil, "Only these lifecycles (active, completed, cancelled)")
}

func runList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	filter, err := buildSessionFilter(database, listLead, listAfter, listBefore, listLifecycle)
	if err != nil {
		return err
	}
	filter.ProjectID = listProject
	filter.Limit = listLimit

	sessions, err := database.ListSessions(filter)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found. Run 'studiodesk sync' to import an export.")
		return nil
	}

	fmt.Printf("Showing %d session(s)\n\n", len(sessions))
	printSessions(sessions, time.Now())
	return nil
}

// buildSessionFilter resolves user-facing filter flags
func buildSessionFilter(database *db.DB, lead, after, before string, lifecycles []string) (db.SessionFilter, error) {
	var filter db.SessionFilter
	now := time.Now()

	if lead != "" {
		id, err := database.FindLeadID(lead)
		if err != nil {
			return filter, fmt.Errorf("unknown lead %q", lead)
		}
		filter.LeadID = id
	}
	if after != "" {
		day, err := dates.Day(after, now)
		if err != nil {
			return filter, err
		}
		filter.After = day
	}
	if before != "" {
		day, err := dates.Day(before, now)
		if err != nil {
			return filter, err
		}
		filter.Before = day
	}
	for _, l := range lifecycles {
		lc := models.Lifecycle(strings.ToLower(strings.TrimSpace(l)))
		if !lc.Valid() {
			return filter, fmt.Errorf("unknown lifecycle %q (want active, completed or cancelled)", l)
		}
		filter.Lifecycles = append(filter.Lifecycles, lc)
	}
	return filter, nil
}

// printSessions prints sessions under a heading per lifecycle
func printSessions(sessions []models.Session, now time.Time) {
	var current models.Lifecycle
	for i, s := range sessions {
		lc := lifecycle.Resolve(s)
		if lc != current {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("== %s ==\n", strings.ToUpper(string(lc)))
			current = lc
		}
		fmt.Printf("[%d] %s\n", i+1, sessionHeadline(s))
		fmt.Printf("    ID: %s", s.ID)
		if rel := relativeWhen(s, now); rel != "" {
			fmt.Printf("  (%s)", rel)
		}
		fmt.Println()
		if s.Location != "" {
			fmt.Printf("    Location: %s\n", s.Location)
		}
	}
}

// sessionHeadline is the one-line summary used by list, search and the TUI
func sessionHeadline(s models.Session) string {
	parts := []string{formatWhen(s)}
	if label := s.StatusLabel(); label != "" {
		parts = append(parts, label)
	}
	if s.LeadName != "" {
		parts = append(parts, s.LeadName)
	}
	if s.ProjectName != "" {
		parts = append(parts, s.ProjectName)
	}
	return strings.Join(parts, " · ")
}

func formatWhen(s models.Session) string {
	if s.Time == "" {
		return s.Date
	}
	return s.Date + " " + s.Time
}

// relativeWhen renders the session time relative to now, or "" if unparseable
func relativeWhen(s models.Session, now time.Time) string {
	at, ok := lifecycle.Timestamp(s)
	if !ok {
		return ""
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

// truncate shortens long single-line text for display
func truncate(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	// Find a good break point (end of word)
	truncated := string(runes[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace >= 0 && utf8.RuneCountInString(truncated[:lastSpace]) > maxLen-20 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
