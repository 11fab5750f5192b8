package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage message templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored message templates",
	RunE:  runTemplatesList,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	templates, err := database.ListTemplates()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("No stored templates; remind uses the built-in reminder.")
		return nil
	}

	for _, t := range templates {
		fmt.Printf("%s (%s)\n", t.Name, orValue(t.Channel, "any channel"))
		if t.Subject != "" {
			fmt.Printf("    Subject: %s\n", t.Subject)
		}
		fmt.Printf("    %s\n", truncate(t.Body, 100))
	}
	return nil
}
