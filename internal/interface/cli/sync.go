package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/importer"
)

var syncCmd = &cobra.Command{
	Use:   "sync [path]",
	Short: "Import studio export files",
	Long: `Import JSONL exports from ~/.config/studiodesk/exports/ or a specified file
or directory.

Performs incremental sync - files already imported with the same content are
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	sourcePath := config.ExportDir()
	if len(args) > 0 {
		sourcePath = args[0]
	}

	fmt.Printf("Syncing exports from: %s\n", sourcePath)
	fmt.Printf("Database: %s\n\n", dbPath)

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	files, err := importer.FindExports(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to find exports: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No export files found")
		return nil
	}

	imp := importer.New(database)
	progress := importer.NewProgressReporter(os.Stdout, len(files))

	result, err := imp.ImportPath(sourcePath, progress)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	progress.Finish()

	fmt.Printf("Imported %d file(s), %d unchanged, %d failed (%d records, %d sessions)\n",
		result.FilesImported, result.FilesSkipped, result.FilesFailed, result.Records, result.Sessions)
	return nil
}
