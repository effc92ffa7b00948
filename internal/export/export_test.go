package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/task"
)

var now = time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)

func fixture() ([]task.Task, *analysis.Result) {
	tasks := []task.Task{
		{ID: "1", Title: "Write report", DueDate: task.NewDate(2025, 11, 30), Importance: 8, EstimatedHours: 3, Dependencies: []task.ID{}},
		{ID: "2", Title: "Fix bug", DueDate: task.NewDate(2025, 11, 27), Importance: 9, EstimatedHours: 1, Dependencies: []task.ID{"1", "9"}},
		{ID: "3", Title: "Tidy desk", DueDate: task.NewDate(2025, 12, 5), Importance: 2, EstimatedHours: 1, Dependencies: []task.ID{}, Completed: true},
	}
	res := &analysis.Result{
		Tasks: []analysis.ScoredTask{
			{Task: tasks[1], Score: analysis.NewScore(91.6)},
			{Task: tasks[2], Score: analysis.NewScore(10)},
			{Task: tasks[0], Score: analysis.NewScore(55)},
		},
		SuggestedTasks: []analysis.ScoredTask{{Task: tasks[1], Score: analysis.NewScore(91.6)}},
	}
	return tasks, res
}

func TestWrite_JSON(t *testing.T) {
	tasks, res := fixture()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "JSON", NewReport(tasks, res, now)))

	var got struct {
		Tasks struct {
			Items []map[string]any `json:"items"`
		} `json:"tasks"`
		Results struct {
			Analyzed bool             `json:"analyzed"`
			Priority []map[string]any `json:"priority"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Tasks.Items, 3)
	assert.True(t, got.Results.Analyzed)
	require.Len(t, got.Results.Priority, 2, "completed task is skipped")
	assert.EqualValues(t, 92, got.Results.Priority[0]["score"])
	assert.EqualValues(t, 3, got.Results.Priority[1]["rank"])
}

func TestWrite_CSV(t *testing.T) {
	tasks, res := fixture()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, NewReport(tasks, res, now)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, []string{"1", "Write report", "2025-11-30", "due in 2 days", "8/10", "3 hours", "", "false", "3", "55", "medium"}, rows[1])
	assert.Equal(t, []string{"2", "Fix bug", "2025-11-27", "overdue by 1 days", "9/10", "1 hour", "1;9", "false", "1", "92", "high"}, rows[2])
	assert.Equal(t, "", rows[3][8], "completed task has no rank")
}

func TestWrite_CSVNotAnalyzed(t *testing.T) {
	tasks, _ := fixture()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, NewReport(tasks, nil, now)))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	for _, row := range rows[1:] {
		assert.Equal(t, []string{"", "", ""}, row[8:])
	}
}

func TestWrite_PDF(t *testing.T) {
	tasks, res := fixture()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, NewReport(tasks, res, now)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, Write(&buf, FormatPDF, NewReport(nil, nil, now)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xlsx", NewReport(nil, nil, now))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
