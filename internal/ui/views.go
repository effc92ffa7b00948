package ui

import (
	"fmt"
	"time"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/task"
)

// Placeholder messages shown in place of empty lists.
const (
	PlaceholderNoTasks          = "No tasks added yet. Add a task to get started."
	PlaceholderNoPriority       = "No tasks to display. Add some tasks and analyze them."
	PlaceholderNoSuggestions    = "No suggested tasks. Complete some tasks or add more tasks."
	PlaceholderAwaitPriority    = "Your prioritized tasks will appear here after analysis."
	PlaceholderAwaitSuggestions = "Your suggested tasks will appear here."
)

// TaskItem is one row of the task list.
type TaskItem struct {
	ID           task.ID   `json:"id"`
	Title        string    `json:"title"`
	DueDate      string    `json:"due_date"`
	Urgency      string    `json:"urgency,omitempty"` // "" when the task has no due date
	Overdue      bool      `json:"overdue"`
	DaysLeft     int       `json:"days_left"`
	Importance   string    `json:"importance"` // "N/10"
	Effort       string    `json:"effort"`     // "1 hour" / "N hours"
	Dependencies []task.ID `json:"dependencies"`
	Completed    bool      `json:"completed"`
}

// TaskListView is the projection of the whole store.
type TaskListView struct {
	Items       []TaskItem `json:"items"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// Empty reports whether the placeholder should be shown.
func (v TaskListView) Empty() bool { return len(v.Items) == 0 }

// ProjectTaskList builds the list view in store order. Urgency is computed against today.
func ProjectTaskList(tasks []task.Task, today time.Time) TaskListView {
	if len(tasks) == 0 {
		return TaskListView{Items: []TaskItem{}, Placeholder: PlaceholderNoTasks}
	}
	items := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		item := TaskItem{
			ID:           t.ID,
			Title:        t.Title,
			DueDate:      t.DueDate.String(),
			Importance:   importanceLabel(t.Importance),
			Effort:       t.EffortLabel(),
			Dependencies: append([]task.ID{}, t.Dependencies...),
			Completed:    t.Completed,
		}
		if u, ok := t.Urgency(today); ok {
			item.Urgency = u.Label
			item.Overdue = u.Overdue
			item.DaysLeft = u.DaysLeft
		}
		items = append(items, item)
	}
	return TaskListView{Items: items}
}

// ScoredItem is one row of the priority or suggestion list.
type ScoredItem struct {
	Rank       int     `json:"rank,omitempty"` // 1-based position in the service's list; 0 for suggestions
	ID         task.ID `json:"id"`
	Title      string  `json:"title"`
	DueDate    string  `json:"due_date"`
	Importance string  `json:"importance"`
	Effort     string  `json:"effort"`
	Score      *int    `json:"score,omitempty"` // rounded; nil when the service sent no usable score
	Tier       Tier    `json:"tier"`
	Completed  bool    `json:"completed"`
}

// ScoreLabel renders the rounded score, or "-" when there is none.
func (i ScoredItem) ScoreLabel() string {
	if i.Score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *i.Score)
}

// ResultsView is the projection of the last analysis.
type ResultsView struct {
	Analyzed               bool         `json:"analyzed"`
	Priority               []ScoredItem `json:"priority"`
	Suggestions            []ScoredItem `json:"suggestions"`
	PriorityPlaceholder    string       `json:"priority_placeholder,omitempty"`
	SuggestionsPlaceholder string       `json:"suggestions_placeholder,omitempty"`
	Message                string       `json:"message,omitempty"`
}

// ProjectResults builds both result lists. A nil result is the "not analyzed yet" state.
// The priority list keeps the service's order and skips completed tasks; each row's
// rank is its position in the returned list. Suggestions are shown as returned.
func ProjectResults(res *analysis.Result) ResultsView {
	if res == nil {
		return ResultsView{
			Priority:               []ScoredItem{},
			Suggestions:            []ScoredItem{},
			PriorityPlaceholder:    PlaceholderAwaitPriority,
			SuggestionsPlaceholder: PlaceholderAwaitSuggestions,
		}
	}

	v := ResultsView{
		Analyzed:    true,
		Priority:    []ScoredItem{},
		Suggestions: []ScoredItem{},
		Message:     res.Message,
	}
	for i, st := range res.Tasks {
		if st.Completed {
			continue
		}
		item := scoredItem(st)
		item.Rank = i + 1
		v.Priority = append(v.Priority, item)
	}
	for _, st := range res.SuggestedTasks {
		v.Suggestions = append(v.Suggestions, scoredItem(st))
	}

	if len(v.Priority) == 0 {
		v.PriorityPlaceholder = PlaceholderNoPriority
	}
	if len(v.Suggestions) == 0 {
		v.SuggestionsPlaceholder = PlaceholderNoSuggestions
	}
	return v
}

func scoredItem(st analysis.ScoredTask) ScoredItem {
	item := ScoredItem{
		ID:         st.ID,
		Title:      st.Title,
		DueDate:    st.DueDate.String(),
		Importance: importanceLabel(st.Importance),
		Effort:     st.EffortLabel(),
		Tier:       TierFor(st.Score),
		Completed:  st.Completed,
	}
	if usableScore(st.Score) {
		r := st.Score.Rounded()
		item.Score = &r
	}
	return item
}

func importanceLabel(n int) string {
	return fmt.Sprintf("%d/10", n)
}
