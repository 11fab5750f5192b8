package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long: `Display statistics about the studiodesk database.

Shows record counts, sessions per lifecycle, the next upcoming session, the
busiest lead, and storage info. Sessions whose status label is not
recognised are counted separately; they are treated as active.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	now := time.Now()
	stats, err := database.GetStats(now)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	fmt.Println("Database Statistics")
	fmt.Println("===================")
	fmt.Println()

	fmt.Printf("Total Sessions:    %s\n", humanize.Comma(int64(stats.TotalSessions)))
	fmt.Printf("Leads:             %d\n", stats.TotalLeads)
	fmt.Printf("Projects:          %d\n", stats.TotalProjects)
	fmt.Printf("Status Types:      %d\n", stats.TotalStatuses)
	fmt.Printf("Templates:         %d\n", stats.TotalTemplates)
	fmt.Println()

	for _, lc := range models.Lifecycles {
		fmt.Printf("  %-10s %d\n", lc, stats.ByLifecycle[lc])
	}
	if stats.UnrecognizedStatus > 0 {
		fmt.Printf("\nWarning: %d session(s) have an unrecognised status and were treated as active\n", stats.UnrecognizedStatus)
	}
	fmt.Println()

	if stats.NextSession != nil {
		fmt.Printf("Next Session:      %s (%s)\n", sessionHeadline(*stats.NextSession), relativeWhen(*stats.NextSession, now))
	}
	if stats.BusiestLead != "" {
		fmt.Printf("Busiest Lead:      %s (%d sessions)\n", stats.BusiestLead, stats.BusiestLeadCount)
	}
	fmt.Println()

	fileInfo, err := os.Stat(dbPath)
	if err != nil {
		return fmt.Errorf("failed to stat database file: %w", err)
	}

	fmt.Printf("Database Location: %s\n", dbPath)
	fmt.Printf("Database Size:     %s\n", humanize.Bytes(uint64(fileInfo.Size())))

	return nil
}
