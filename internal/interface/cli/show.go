package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	s, err := database.GetSession(args[0])
	if err != nil {
		return err
	}

	lc, source := lifecycle.Classify(*s)

	fmt.Printf("Session:   %s\n", s.ID)
	fmt.Printf("When:      %s", formatWhen(*s))
	if rel := relativeWhen(*s, time.Now()); rel != "" {
		fmt.Printf(" (%s)", rel)
	}
	fmt.Println()
	fmt.Printf("Status:    %s\n", orNone(s.StatusLabel()))
	fmt.Printf("Lifecycle: %s (from %s)\n", lc, source)
	if s.LeadID != "" {
		fmt.Printf("Lead:      %s\n", orValue(s.LeadName, s.LeadID))
	}
	if s.ProjectID != "" {
		fmt.Printf("Project:   %s\n", orValue(s.ProjectName, s.ProjectID))
	}
	if s.Location != "" {
		fmt.Printf("Location:  %s\n", s.Location)
	}
	if !s.UpdatedAt.IsZero() {
		fmt.Printf("Updated:   %s\n", humanize.Time(s.UpdatedAt))
	}
	if s.Notes != "" {
		fmt.Printf("\n%s\n", s.Notes)
	}
	return nil
}

func orNone(v string) string {
	return orValue(v, "(none)")
}

func orValue(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
