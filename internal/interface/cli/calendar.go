package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/calendar"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/report"
)

var (
	calendarFrom          string
	calendarTo            string
	calendarDays          int
	calendarLead          string
	calendarHideCancelled bool
	calendarFormat        string
	calendarOutput        string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show sessions day by day",
	Long: `Show the sessions in a date range grouped by day.

The range defaults to today plus calendar_days from config.toml. Use
--format markdown or --format pdf with --output to produce a shareable
report.

Examples:
  studiodesk calendar
  studiodesk calendar --from monday --days 7 --hide-cancelled
  studiodesk calendar --from 2025-03-01 --to 2025-03-31 --format pdf -o march.pdf`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().StringVar(&calendarFrom, "from", "today", "First day")
	calendarCmd.Flags().StringVar(&calendarTo, "to", "", "Last day (overrides --days)")
	calendarCmd.Flags().IntVar(&calendarDays, "days", 0, "Number of days (default from config)")
	calendarCmd.Flags().StringVar(&calendarLead, "lead", "", "Filter by lead id or name")
	calendarCmd.Flags().BoolVar(&calendarHideCancelled, "hide-cancelled", false, "Hide cancelled sessions (default from config)")
	calendarCmd.Flags().StringVar(&calendarFormat, "format", "text", "Output format: text, markdown, pdf")
	calendarCmd.Flags().StringVarP(&calendarOutput, "output", "o", "", "Write to file instead of stdout (required for pdf)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	now := time.Now()
	from, err := dates.Parse(calendarFrom, now)
	if err != nil {
		return err
	}

	days := cfg.CalendarDays
	if calendarDays > 0 {
		days = calendarDays
	}
	r := calendar.NewRange(from, days)
	if calendarTo != "" {
		to, err := dates.Day(calendarTo, now)
		if err != nil {
			return err
		}
		r.To = to
	}

	opts := calendar.Options{HideCancelled: cfg.HideCancelled}
	if cmd.Flags().Changed("hide-cancelled") {
		opts.HideCancelled = calendarHideCancelled
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	if calendarLead != "" {
		id, err := database.FindLeadID(calendarLead)
		if err != nil {
			return fmt.Errorf("unknown lead %q", calendarLead)
		}
		opts.LeadID = id
	}

	cal, err := calendar.Build(database, r, opts)
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	switch calendarFormat {
	case "text":
		printCalendar(cal, now)
		return nil
	case "markdown", "md":
		return writeOutput(calendarOutput, []byte(report.CalendarMarkdown(cal, cfg.StudioName)))
	case "pdf":
		if calendarOutput == "" {
			return fmt.Errorf("--output is required for pdf")
		}
		f, err := os.Create(calendarOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", calendarOutput, err)
		}
		if err := report.WriteCalendarPDF(f, cal, cfg.StudioName); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		absPath, _ := filepath.Abs(calendarOutput)
		fmt.Printf("PDF calendar written to: %s\n", absPath)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or pdf)", calendarFormat)
	}
}

func printCalendar(cal *calendar.Calendar, now time.Time) {
	fmt.Printf("Calendar %s to %s: %d session(s)\n", cal.Range.From, cal.Range.To, cal.Total)
	if cal.Hidden > 0 {
		fmt.Printf("(%d cancelled hidden)\n", cal.Hidden)
	}
	fmt.Println()

	if len(cal.Days) == 0 {
		fmt.Println("No sessions scheduled.")
		return
	}

	today := now.Format(dates.DayLayout)
	for _, day := range cal.Days {
		heading := day.Date
		if t, err := time.Parse(dates.DayLayout, day.Date); err == nil {
			heading = t.Format("Mon Jan 2")
		}
		if day.Date == today {
			heading += " (today)"
		}
		fmt.Println(heading)
		for _, s := range day.Sessions {
			fmt.Printf("  %-6s %s  [%s]\n", orValue(s.Time, "--:--"), truncate(sessionHeadline(s), 70), s.ID)
		}
		fmt.Println()
	}
}

// writeOutput writes data to path, or stdout when path is empty
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	absPath, _ := filepath.Abs(path)
	fmt.Printf("Written to: %s\n", absPath)
	return nil
}
