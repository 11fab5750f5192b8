package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/db"
)

var statusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Manage status definitions",
}

var statusesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List status definitions",
	RunE:  runStatusesList,
}

var statusesImportCmd = &cobra.Command{
	Use:   "import <catalogue.yaml>",
	Short: "Import status definitions from a YAML catalogue",
	Long: `Import status definitions from a YAML file:

  statuses:
    - id: st-booked
      name: Booked
      lifecycle: active
    - id: st-delivered
      name: Delivered
      lifecycle: completed

Existing definitions with the same id are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatusesImport,
}

func init() {
	rootCmd.AddCommand(statusesCmd)
	statusesCmd.AddCommand(statusesListCmd)
	statusesCmd.AddCommand(statusesImportCmd)
}

func runStatusesList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	defs, err := database.ListStatusDefinitions()
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		fmt.Println("No status definitions. Legacy status labels are used for every session.")
		return nil
	}

	fmt.Printf("%-20s %-24s %s\n", "ID", "NAME", "LIFECYCLE")
	for _, d := range defs {
		fmt.Printf("%-20s %-24s %s\n", d.ID, d.Name, d.Lifecycle)
	}
	return nil
}

func runStatusesImport(cmd *cobra.Command, args []string) error {
	defs, err := config.LoadStatusCatalog(args[0])
	if err != nil {
		return err
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	err = database.WithTx(func(w *db.Writer) error {
		for _, d := range defs {
			if err := w.UpsertStatusDefinition(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import statuses: %w", err)
	}

	fmt.Printf("Imported %d status definition(s)\n", len(defs))
	return nil
}
