package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiodesk/studiodesk/cmd/studiodesk/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server for assistant integration",
	Long: `Start an MCP (Model Context Protocol) server that lets an assistant list,
search and read your studio sessions and calendar.

New files in ~/.config/studiodesk/exports/ are imported before each tool call.

Example client configuration:
  {
    "mcpServers": {
      "studiodesk": {
        "command": "studiodesk",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
