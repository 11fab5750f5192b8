package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/internal/core/config"
	"github.com/studiodesk/studiodesk/internal/core/messaging"
)

var (
	remindTemplate string
	remindCopy     bool
)

var remindCmd = &cobra.Command{
	Use:   "remind <session-id>",
	Short: "Render a reminder message for a session",
	Long: `Render a client reminder for a session from a message template.

Uses --template if given, otherwise default_template from config.toml, and
finally the built-in reminder (override it in
~/.config/studiodesk/reminder_template.txt).

Examples:
  studiodesk remind 3f2a
  studiodesk remind 3f2a --template sms-reminder --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().StringVarP(&remindTemplate, "template", "t", "", "Stored template name")
	remindCmd.Flags().BoolVarP(&remindCopy, "copy", "c", false, "Copy the message body to the clipboard")
}

func runRemind(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

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

	msg, err := messaging.Reminder(database, cfg, *s, remindTemplate, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Channel: %s\n", msg.Channel)
	fmt.Printf("Subject: %s\n\n", msg.Subject)
	fmt.Println(msg.Body)

	if remindCopy {
		if err := clipboard.WriteAll(msg.Body); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		} else {
			fmt.Println("\nCopied to clipboard")
		}
	}
	return nil
}
