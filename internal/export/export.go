// Package export writes a report of the task store and the last analysis
// as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/jung-kurt/gofpdf"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats lists the supported formats.
var Formats = []string{FormatJSON, FormatCSV, FormatPDF}

var ErrUnknownFormat = errors.New("unknown export format")

// Report is the exported snapshot.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Tasks       ui.TaskListView `json:"tasks"`
	Results     ui.ResultsView  `json:"results"`
}

// NewReport projects tasks and the last analysis result (nil when none) as of now.
func NewReport(tasks []task.Task, res *analysis.Result, now time.Time) Report {
	return Report{
		GeneratedAt: now,
		Tasks:       ui.ProjectTaskList(tasks, now),
		Results:     ui.ProjectResults(res),
	}
}

// Write encodes r to w in the given format.
func Write(w io.Writer, format string, r Report) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatPDF:
		return writePDF(w, r)
	default:
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

var csvHeader = []string{
	"id", "title", "due_date", "urgency", "importance", "effort",
	"dependencies", "completed", "rank", "score", "tier",
}

// writeCSV emits one row per task; rank, score and tier come from the
// priority list and are blank for tasks that were not analyzed.
func writeCSV(w io.Writer, r Report) error {
	scored := make(map[task.ID]ui.ScoredItem, len(r.Results.Priority))
	for _, it := range r.Results.Priority {
		scored[it.ID] = it
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range r.Tasks.Items {
		rank, score, tier := "", "", ""
		if s, ok := scored[it.ID]; ok {
			rank = strconv.Itoa(s.Rank)
			if s.Score != nil {
				score = strconv.Itoa(*s.Score)
			}
			tier = string(s.Tier)
		}
		row := []string{
			it.ID.String(), it.Title, it.DueDate, it.Urgency, it.Importance, it.Effort,
			joinIDs(it.Dependencies), strconv.FormatBool(it.Completed), rank, score, tier,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "SmartTask Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, title)
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
	}
	line := func(s string) { pdf.MultiCell(0, 6, tr(s), "0", "L", false) }

	section("Tasks")
	if r.Tasks.Empty() {
		line(r.Tasks.Placeholder)
	}
	for _, it := range r.Tasks.Items {
		mark := "[ ]"
		if it.Completed {
			mark = "[x]"
		}
		line(fmt.Sprintf("%s %s  (due %s, %s)  importance %s, %s", mark, it.Title, it.DueDate, it.Urgency, it.Importance, it.Effort))
	}
	pdf.Ln(4)

	section("Priority")
	if len(r.Results.Priority) == 0 {
		line(r.Results.PriorityPlaceholder)
	}
	for _, it := range r.Results.Priority {
		line(fmt.Sprintf("%d. %s  [%s]  %s", it.Rank, it.Title, it.Tier.Title(), it.ScoreLabel()))
	}
	pdf.Ln(4)

	section("Suggestions")
	if len(r.Results.Suggestions) == 0 {
		line(r.Results.SuggestionsPlaceholder)
	}
	for _, it := range r.Results.Suggestions {
		line(fmt.Sprintf("- %s  %s", it.Title, it.ScoreLabel()))
	}
	if r.Results.Message != "" {
		pdf.Ln(4)
		line(r.Results.Message)
	}

	return pdf.Output(w)
}

func joinIDs(ids []task.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ";")
}
