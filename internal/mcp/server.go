package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/smarttask/internal/app"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is reported to clients during initialization.
const ServerName = "smarttask-mcp"

// NewServer builds an MCP server exposing the task tools over a.
func NewServer(a *app.TaskApp, version string, logger *slog.Logger) *mcpsdk.Server {
	h := NewHandlers(a, logger)

	impl := &mcpsdk.Implementation{Name: ServerName, Version: version}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{
		InitializedHandler: func(context.Context, *mcpsdk.ServerSession, *mcpsdk.InitializedParams) {
			h.log.Info("mcp connection established")
		},
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolAddTask,
		Description: "Add a task. title and due_date (YYYY-MM-DD) are required; importance is 1-10 (default 5), estimated_hours is positive (default 1), dependencies are task ids.",
	}, h.AddTask)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolListTasks,
		Description: "List all tasks with urgency, importance and effort. Set results=true to include the last priority analysis.",
	}, h.ListTasks)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolToggleTask,
		Description: "Toggle a task between completed and open by id.",
	}, h.ToggleTask)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolDeleteTask,
		Description: "Delete a task by id. Confirm with the user first.",
	}, h.DeleteTask)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolClearTasks,
		Description: "Delete every task and the last analysis. Requires confirm=true.",
	}, h.ClearTasks)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolImportTasks,
		Description: "Replace all tasks with a JSON array of task objects, then analyze them unless skip_analysis is set.",
	}, h.ImportTasks)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolAnalyzeTasks,
		Description: "Submit all tasks to the scoring service and return the priority list and suggestions.",
	}, h.AnalyzeTasks)

	return server
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
// stdout carries JSON-RPC only; logs must go to stderr.
func Serve(ctx context.Context, a *app.TaskApp, version string, logger *slog.Logger) error {
	if err := NewServer(a, version, logger).Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
