package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
)

var statusCmd = &cobra.Command{
	Use:   "status <session-id> <status>",
	Short: "Change a session's status",
	Long: `Change a session's status.

A value naming a status definition (by id or name) links that definition.
Anything else is stored as a legacy label.

Examples:
  studiodesk status 3f2a delivered
  studiodesk status 3f2a "In editing"`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	s, err := database.UpdateSessionStatus(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	lc, source := lifecycle.Classify(*s)
	fmt.Printf("Session %s is now %s (%s, from %s)\n", s.ID, s.StatusLabel(), lc, source)
	if source == lifecycle.SourceDefault {
		fmt.Printf("Warning: status %q is not recognised and is treated as active\n", s.Status)
	}
	return nil
}
