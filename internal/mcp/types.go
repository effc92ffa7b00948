// Package mcp provides types and utilities for the MCP server.
package mcp

// === Tool Names ===

const (
	ToolAddTask      = "add-task"
	ToolListTasks    = "list-tasks"
	ToolToggleTask   = "toggle-task"
	ToolDeleteTask   = "delete-task"
	ToolClearTasks   = "clear-tasks"
	ToolImportTasks  = "import-tasks"
	ToolAnalyzeTasks = "analyze-tasks"
)

// ToolNames returns every registered tool name.
func ToolNames() []string {
	return []string{
		ToolAddTask, ToolListTasks, ToolToggleTask, ToolDeleteTask,
		ToolClearTasks, ToolImportTasks, ToolAnalyzeTasks,
	}
}

// === Parameter Types ===

// AddTaskParams defines the parameters for the add-task tool.
type AddTaskParams struct {
	Title   string `json:"title"`    // Required
	DueDate string `json:"due_date"` // Required: YYYY-MM-DD

	// Importance is 1-10; anything else falls back to 5.
	Importance int `json:"importance,omitempty"`

	// EstimatedHours must be positive; anything else falls back to 1.
	EstimatedHours float64  `json:"estimated_hours,omitempty"`
	Dependencies   []string `json:"dependencies,omitempty"`
}

// ListTasksParams defines the parameters for the list-tasks tool.
type ListTasksParams struct {
	Results bool `json:"results,omitempty"` // If true, include the last analysis
}

// TaskIDParams identifies one task (toggle-task, delete-task).
type TaskIDParams struct {
	ID string `json:"id"`
}

// ClearTasksParams defines the parameters for the clear-tasks tool.
type ClearTasksParams struct {
	Confirm bool `json:"confirm"` // Must be true; clearing cannot be undone
}

// ImportTasksParams defines the parameters for the import-tasks tool.
type ImportTasksParams struct {
	// JSON is an array of task objects. title and due_date are required on each.
	JSON string `json:"json"`

	// SkipAnalysis disables the analysis that normally follows an import.
	SkipAnalysis bool `json:"skip_analysis,omitempty"`
}

// AnalyzeTasksParams defines the parameters for the analyze-tasks tool.
type AnalyzeTasksParams struct{}
