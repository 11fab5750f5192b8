package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/dates"
	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/internal/core/lifecycle"
	"github.com/studiodesk/studiodesk/internal/core/models"
)

var (
	addID       string
	addDate     string
	addTime     string
	addStatus   string
	addLead     string
	addProject  string
	addLocation string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule a new session",
	Long: `Add a session to the local database.

--status accepts a status definition id or name (linking it) or any legacy
label such as planned, confirmed or delivered.

Examples:
  studiodesk add --date "next friday" --time 14:00 --lead "Ada Lovelace"
  studiodesk add --date 2025-03-01 --status Booked --location "Studio B"`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addID, "id", "", "Session id (default: generated)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Session date (required)")
	addCmd.Flags().StringVar(&addTime, "time", "", "Start time, HH:MM")
	addCmd.Flags().StringVar(&addStatus, "status", "planned", "Status definition or legacy label")
	addCmd.Flags().StringVar(&addLead, "lead", "", "Lead id or name")
	addCmd.Flags().StringVar(&addProject, "project", "", "Project id")
	addCmd.Flags().StringVar(&addLocation, "location", "", "Location")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Notes")
	_ = addCmd.MarkFlagRequired("date")
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := dates.Day(addDate, time.Now())
	if err != nil {
		return err
	}
	if addTime != "" {
		if _, err := time.Parse("15:04", addTime); err != nil {
			return fmt.Errorf("invalid time %q, want HH:MM", addTime)
		}
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	s := models.Session{
		ID:        addID,
		Date:      day,
		Time:      addTime,
		ProjectID: addProject,
		Location:  addLocation,
		Notes:     addNotes,
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	if addLead != "" {
		id, err := database.FindLeadID(addLead)
		if err != nil {
			return fmt.Errorf("unknown lead %q", addLead)
		}
		s.LeadID = id
	}

	status := strings.TrimSpace(addStatus)
	def, err := database.FindStatusDefinition(status)
	switch {
	case err == nil:
		s.StatusDefinition = def
		s.Status = def.Name
	case errors.Is(err, db.ErrNotFound):
		s.Status = status
		if _, ok := lifecycle.ClassifyLegacy(status); !ok && status != "" {
			fmt.Printf("Warning: status %q is not recognised and will be treated as active\n", status)
		}
	default:
		return err
	}

	if err := database.UpsertSession(s); err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}

	fmt.Printf("Added session %s on %s (%s)\n", s.ID, formatWhen(s), lifecycle.Resolve(s))
	return nil
}
