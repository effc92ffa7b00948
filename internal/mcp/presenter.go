package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
)

// Presenters turn app results into token-efficient Markdown for AI clients.

// FormatTaskResult converts a TaskResult into concise Markdown.
func FormatTaskResult(result *app.TaskResult, today time.Time) string {
	if result == nil {
		return "No task information."
	}

	var sb strings.Builder
	if result.Message != "" {
		sb.WriteString(result.Message)
		sb.WriteString("\n\n")
	}
	if result.Task != nil {
		view := ui.ProjectTaskList([]task.Task{*result.Task}, today)
		sb.WriteString(formatItem(view.Items[0]))
		sb.WriteString("\n")
	}
	if result.AnalysisError != "" {
		sb.WriteString(fmt.Sprintf("\n> **Analysis failed**: %s\n", result.AnalysisError))
	}
	if result.Analysis != nil {
		sb.WriteString("\n")
		sb.WriteString(FormatResults(ui.ProjectResults(result.Analysis)))
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "Done."
	}
	return out
}

// FormatTaskList renders the task list as a checklist.
func FormatTaskList(view ui.TaskListView) string {
	if view.Empty() {
		return view.Placeholder
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Tasks (%d)\n\n", len(view.Items)))
	for _, it := range view.Items {
		sb.WriteString(formatItem(it))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// FormatResults renders the priority and suggestion lists.
func FormatResults(view ui.ResultsView) string {
	var sb strings.Builder

	sb.WriteString("## Priority\n\n")
	if len(view.Priority) == 0 {
		sb.WriteString(view.PriorityPlaceholder + "\n")
	}
	for _, it := range view.Priority {
		sb.WriteString(fmt.Sprintf("%d. **%s** [%s] score %s | due %s | importance %s | %s\n",
			it.Rank, it.Title, it.Tier.Title(), it.ScoreLabel(), it.DueDate, it.Importance, it.Effort))
	}

	sb.WriteString("\n## Suggestions\n\n")
	if len(view.Suggestions) == 0 {
		sb.WriteString(view.SuggestionsPlaceholder + "\n")
	}
	for _, it := range view.Suggestions {
		sb.WriteString(fmt.Sprintf("- **%s** score %s | due %s\n", it.Title, it.ScoreLabel(), it.DueDate))
	}

	if view.Message != "" {
		sb.WriteString("\n> " + view.Message + "\n")
	}
	return strings.TrimSpace(sb.String())
}

// FormatError returns a Markdown error block.
func FormatError(message string) string {
	return fmt.Sprintf("## Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for validation failures.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}

func formatItem(it ui.TaskItem) string {
	box := "[ ]"
	if it.Completed {
		box = "[x]"
	}
	due := it.DueDate
	if it.Urgency != "" {
		due += ", " + it.Urgency
	}
	if it.Overdue {
		due = "**" + due + "**"
	}
	line := fmt.Sprintf("- %s %s `%s` (due %s) importance %s, %s", box, it.Title, it.ID, due, it.Importance, it.Effort)
	if len(it.Dependencies) > 0 {
		deps := make([]string, len(it.Dependencies))
		for i, d := range it.Dependencies {
			deps[i] = d.String()
		}
		line += " | depends on " + strings.Join(deps, ", ")
	}
	return line
}
