package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTaskList writes the task list as a table, or its placeholder.
func RenderTaskList(w io.Writer, v TaskListView) {
	fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf("📋 Tasks (%d)", len(v.Items))))
	if v.Empty() {
		fmt.Fprintln(w, " "+StylePlaceholder.Render(v.Placeholder))
		return
	}

	table := &Table{
		Headers:  []string{"ID", "Title", "Due", "Urgency", "Importance", "Effort", "Done"},
		MaxWidth: 40,
		RowStyle: func(r int) (lipgloss.Style, bool) {
			item := v.Items[r]
			switch {
			case item.Completed:
				return StyleCompleted, true
			case item.Overdue:
				return StyleOverdue, true
			case item.Urgency != "" && item.DaysLeft <= 1:
				return StyleDueSoon, true
			}
			return lipgloss.Style{}, false
		},
	}
	for _, item := range v.Items {
		urgency := item.Urgency
		if urgency == "" {
			urgency = "-"
		}
		table.Rows = append(table.Rows, []string{
			item.ID.String(),
			item.Title,
			item.DueDate,
			capitalize(urgency),
			item.Importance,
			item.Effort,
			checkmark(item.Completed),
		})
	}
	fmt.Fprint(w, table.Render())
}

// RenderResults writes the priority list and the suggestions, each with its placeholder.
func RenderResults(w io.Writer, v ResultsView) {
	if v.Message != "" {
		fmt.Fprintln(w, StyleSuccess.Render("✓ "+v.Message))
	}

	fmt.Fprintln(w, StyleSectionTitle.Render("Priority"))
	if len(v.Priority) == 0 {
		fmt.Fprintln(w, " "+StylePlaceholder.Render(v.PriorityPlaceholder))
	} else {
		for _, item := range v.Priority {
			fmt.Fprintln(w, priorityLine(item))
			fmt.Fprintln(w, "    "+StyleSubtle.Render(metaLine(item)))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleSectionTitle.Render("Suggested for today"))
	if len(v.Suggestions) == 0 {
		fmt.Fprintln(w, " "+StylePlaceholder.Render(v.SuggestionsPlaceholder))
		return
	}
	for _, item := range v.Suggestions {
		fmt.Fprintf(w, " • %s\n", StyleTitle.Render(item.Title))
		fmt.Fprintln(w, "    "+StyleSubtle.Render(metaLine(item)))
	}
}

func priorityLine(item ScoredItem) string {
	style := TierStyle(item.Tier)
	badge := style.Render(fmt.Sprintf("[%s]", item.Tier.Title()))
	return fmt.Sprintf(" %d. %s %s  %s", item.Rank, StyleTitle.Render(item.Title), badge,
		style.Render("Score: "+item.ScoreLabel()))
}

func metaLine(item ScoredItem) string {
	return strings.Join([]string{
		"Due: " + item.DueDate,
		"Importance: " + item.Importance,
		"Effort: " + item.Effort,
	}, "  ")
}

func checkmark(done bool) string {
	if done {
		return "✓"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
