package app

import (
	"github.com/josephgoksu/smarttask/internal/task"
)

// Command is a discrete user action. Each surface (CLI, TUI, MCP) builds one and
// hands it to TaskApp.Dispatch.
type Command interface {
	commandName() string
}

// AddTask creates a task from raw form input. The id is assigned by the app.
type AddTask struct {
	Input task.Input
}

// ToggleComplete flips the completed flag of one task.
type ToggleComplete struct {
	ID task.ID
}

// DeleteTask removes one task. Interactive surfaces confirm before dispatching.
type DeleteTask struct {
	ID task.ID
}

// ClearAll removes every task and the last analysis. Confirmed must be set.
type ClearAll struct {
	Confirmed bool
}

// ImportJSON replaces the whole store with a JSON array of tasks. With Analyze set
// the new list is submitted for analysis right after a successful import.
type ImportJSON struct {
	Data    []byte
	Analyze bool
}

// Analyze submits the current list to the scoring service.
type Analyze struct{}

// Reload re-reads the persisted list, e.g. after another process rewrote it.
type Reload struct{}

func (AddTask) commandName() string { return "add_task" }
func (ToggleComplete) commandName() string { return "toggle_complete" }
func (DeleteTask) commandName() string { return "delete_task" }
func (ClearAll) commandName() string { return "clear_all" }
func (ImportJSON) commandName() string { return "import_json" }
func (Analyze) commandName() string { return "analyze" }
func (Reload) commandName() string { return "reload" }

// CommandName returns the stable name of a command, used in logs and telemetry.
func CommandName(c Command) string { return c.commandName() }
