// Package analysis talks to the external task scoring service.
package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/josephgoksu/smarttask/internal/task"
)

// Score is a service-assigned priority score. The service owns its meaning; the
// client only checks that it is a finite number. Valid is false when the score was
// absent, null, non-numeric, NaN or infinite.
type Score struct {
	Value float64
	Valid bool
}

// NewScore returns a Score, valid only for finite values.
func NewScore(v float64) Score {
	return Score{Value: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else decodes as an
// invalid score rather than failing the whole response.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Score{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*s = NewScore(f)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = NewScore(f)
	}
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Rounded is the score as displayed (nearest integer).
func (s Score) Rounded() int {
	return int(math.Round(s.Value))
}

// ScoredTask is a task as echoed back by the service, with its score.
type ScoredTask struct {
	task.Task
	Score Score `json:"score"`
}

// Result is a successful analysis response.
type Result struct {
	Tasks          []ScoredTask `json:"tasks"`
	SuggestedTasks []ScoredTask `json:"suggested_tasks"`
	Message        string       `json:"message,omitempty"`
}

// errorBody is the failure payload: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}
