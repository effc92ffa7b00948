/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/smarttask/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server on stdio so AI assistants can
manage your tasks.

Tools: add-task, list-tasks, toggle-task, delete-task, clear-tasks,
import-tasks, analyze-tasks.

The server will run until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// NOTE: stdout MUST be pure JSON-RPC. All status output goes to stderr.
		fmt.Fprintln(os.Stderr, "SmartTask MCP Server starting...")
		return withSession(cmd.Context(), func(s *session) error {
			return mcp.Serve(cmd.Context(), s.app, version, appLogger)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
