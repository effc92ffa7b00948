package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handlers implements every tool over one TaskApp.
// Tool errors are returned in the result (IsError) rather than as protocol
// errors so the calling model can see them and self-correct.
type Handlers struct {
	app *app.TaskApp
	log *slog.Logger
}

func NewHandlers(a *app.TaskApp, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{app: a, log: logger}
}

// AddTask handles add-task.
func (h *Handlers) AddTask(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[AddTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
	args := params.Arguments
	h.logCall(ToolAddTask)

	in := task.Input{
		Title:        args.Title,
		DueDate:      args.DueDate,
		Dependencies: args.Dependencies,
	}
	if args.Importance != 0 {
		in.Importance = strconv.Itoa(args.Importance)
	}
	if args.EstimatedHours != 0 {
		in.EstimatedHours = strconv.FormatFloat(args.EstimatedHours, 'f', -1, 64)
	}
	return h.dispatch(ctx, app.AddTask{Input: in})
}

// ListTasks handles list-tasks.
func (h *Handlers) ListTasks(_ context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[ListTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolListTasks)
	out := FormatTaskList(ui.ProjectTaskList(h.app.Tasks(), h.app.Today()))
	if params.Arguments.Results {
		out += "\n\n" + FormatResults(ui.ProjectResults(h.app.LastAnalysis()))
	}
	return markdownResponse(out)
}

// ToggleTask handles toggle-task.
func (h *Handlers) ToggleTask(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[TaskIDParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolToggleTask)
	id := strings.TrimSpace(params.Arguments.ID)
	if id == "" {
		return validationErrorResponse("id", "id is required")
	}
	return h.dispatch(ctx, app.ToggleComplete{ID: task.ID(id)})
}

// DeleteTask handles delete-task. A single delete needs no confirmation here;
// the client is expected to ask its user.
func (h *Handlers) DeleteTask(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[TaskIDParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolDeleteTask)
	id := strings.TrimSpace(params.Arguments.ID)
	if id == "" {
		return validationErrorResponse("id", "id is required")
	}
	return h.dispatch(ctx, app.DeleteTask{ID: task.ID(id)})
}

// ClearTasks handles clear-tasks.
func (h *Handlers) ClearTasks(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[ClearTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolClearTasks)
	return h.dispatch(ctx, app.ClearAll{Confirmed: params.Arguments.Confirm})
}

// ImportTasks handles import-tasks.
func (h *Handlers) ImportTasks(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[ImportTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolImportTasks)
	data := strings.TrimSpace(params.Arguments.JSON)
	if data == "" {
		return validationErrorResponse("json", "a JSON array of tasks is required")
	}
	return h.dispatch(ctx, app.ImportJSON{Data: []byte(data), Analyze: !params.Arguments.SkipAnalysis})
}

// AnalyzeTasks handles analyze-tasks.
func (h *Handlers) AnalyzeTasks(ctx context.Context, _ *mcpsdk.ServerSession, _ *mcpsdk.CallToolParamsFor[AnalyzeTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
	h.logCall(ToolAnalyzeTasks)
	return h.dispatch(ctx, app.Analyze{})
}

func (h *Handlers) dispatch(ctx context.Context, cmd app.Command) (*mcpsdk.CallToolResultFor[any], error) {
	res, err := h.app.Dispatch(ctx, cmd)
	if err != nil {
		var ve *task.ValidationError
		if errors.As(err, &ve) && len(ve.Fields) > 0 {
			return validationErrorResponse(strings.Join(ve.Fields, ", "), err.Error())
		}
		return errorResponse(err)
	}
	return markdownResponse(FormatTaskResult(res, h.app.Today()))
}

func (h *Handlers) logCall(tool string) {
	h.log.Debug("mcp tool call", "tool", tool)
}

// markdownResponse wraps Markdown content in an MCP tool result.
func markdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// errorResponse wraps an error in an MCP tool result with IsError=true.
func errorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: FormatError(err.Error())}},
		IsError: true,
	}, nil
}

// validationErrorResponse wraps a validation error with IsError=true.
func validationErrorResponse(field, message string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: FormatValidationError(field, message)}},
		IsError: true,
	}, nil
}
