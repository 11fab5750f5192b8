package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/search"
)

var (
	searchLimit  int
	searchLead   string
	searchAfter  string
	searchBefore string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search session notes and locations",
	Long: `Search through session notes and locations.

Uses FTS5 full-text search with porter stemming. Queries containing
characters such as @ or - use substring matching instead. Results are shown
in lifecycle order.

Examples:
  studiodesk search "golden hour"
  studiodesk search client@example.com
  studiodesk search portraits --lead "Ada Lovelace" --after 2025-01-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum number of sessions to show")
	searchCmd.Flags().StringVar(&searchLead, "lead", "", "Filter by lead id or name")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "Only sessions on or after this date")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "Only sessions on or before this date")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	filter, err := buildSessionFilter(database, searchLead, searchAfter, searchBefore, nil)
	if err != nil {
		return err
	}

	results, err := search.SearchWithFilters(database, query, search.SearchFilters{
		LeadID: filter.LeadID,
		After:  filter.After,
		Before: filter.Before,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}

	fmt.Printf("Found %d session(s) for: %s\n\n", len(results), query)
	for i, r := range results {
		if i >= searchLimit {
			fmt.Printf("... and %d more sessions (use --limit to see more)\n", len(results)-searchLimit)
			break
		}
		fmt.Printf("[%d] %s\n", i+1, sessionHeadline(r.Session))
		fmt.Printf("    ID: %s\n", r.Session.ID)
		if r.Snippet != "" {
			fmt.Printf("    %s\n", truncate(r.Snippet, 200))
		}
		fmt.Println()
	}

	return nil
}
