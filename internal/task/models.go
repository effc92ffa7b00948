package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultImportance is used when importance is absent or outside [MinImportance, MaxImportance].
	DefaultImportance = 5
	MinImportance     = 1
	MaxImportance     = 10

	// DefaultEstimatedHours is used when the effort estimate is absent or not positive.
	DefaultEstimatedHours = 1.0

	// DateLayout is the wire format of a due date.
	DateLayout = "2006-01-02"
)

// ID identifies a task. Locally assigned ids are decimal strings derived from the
// clock; imported ids may be any non-empty text.
type ID string

func (id ID) String() string { return string(id) }

// IsNumeric reports whether the id is a canonical decimal integer: digits only, no
// leading zeros, within int64. Only such ids are written as JSON numbers.
func (id ID) IsNumeric() bool {
	if id == "" {
		return false
	}
	for _, r := range string(id) {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON writes numeric ids as JSON numbers and everything else as strings,
// so ids survive a round trip through stores written by other clients.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a number or string: %w", err)
	}
	*id = idFromNumber(n)
	return nil
}

// idFromNumber keeps integral numbers in plain decimal form ("1700000000000", not "1.7e+12").
func idFromNumber(n json.Number) ID {
	if i, err := n.Int64(); err == nil {
		return ID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(n.String())
}

// Date is a calendar date without time of day or zone.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the calendar date y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses "YYYY-MM-DD". RFC 3339 timestamps are accepted and truncated to their date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due date must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText and UnmarshalText let yaml and toml encoders treat Date as a scalar.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(text []byte) error {
	if len(bytes.TrimSpace(text)) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task is a user-defined unit of work.
//
// Scores returned by the analysis service are not part of Task; they live on
// analysis.ScoredTask so they can never be persisted.
type Task struct {
	ID             ID      `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title          string  `json:"title" yaml:"title" toml:"title" validate:"required"`
	DueDate        Date    `json:"due_date" yaml:"due_date" toml:"due_date" validate:"required"`
	Importance     int     `json:"importance" yaml:"importance" toml:"importance" validate:"min=1,max=10"`
	EstimatedHours float64 `json:"estimated_hours" yaml:"estimated_hours" toml:"estimated_hours" validate:"gt=0"`
	Dependencies   []ID    `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Completed      bool    `json:"completed" yaml:"completed" toml:"completed"`
}

// Normalize trims the title and replaces invalid numeric fields with their defaults.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	if t.Importance < MinImportance || t.Importance > MaxImportance {
		t.Importance = DefaultImportance
	}
	if !(t.EstimatedHours > 0) {
		t.EstimatedHours = DefaultEstimatedHours
	}
	if t.Dependencies == nil {
		t.Dependencies = []ID{}
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Dependencies != nil {
		c.Dependencies = append([]ID(nil), t.Dependencies...)
	}
	return c
}

// EffortLabel renders the estimate as "1 hour" or "N hours".
func (t Task) EffortLabel() string {
	return FormatHours(t.EstimatedHours)
}

// FormatHours renders an hour count the way task lists display it.
func FormatHours(h float64) string {
	n := strconv.FormatFloat(h, 'f', -1, 64)
	if h == 1 {
		return n + " hour"
	}
	return n + " hours"
}

// Input is the raw, unvalidated shape of a task coming from a form or a flag set.
// Numeric fields are strings so the same parsing rules apply to every surface.
type Input struct {
	Title          string
	DueDate        string
	Importance     string
	EstimatedHours string
	Dependencies   []string
}

// FromInput builds a normalized task from form input. Missing title or due date
// produce a *ValidationError; lenient numeric parsing falls back to defaults.
func FromInput(id ID, in Input) (Task, error) {
	title := strings.TrimSpace(in.Title)
	due := strings.TrimSpace(in.DueDate)
	if title == "" || due == "" {
		return Task{}, &ValidationError{Index: -1, Fields: missingFields(title, due)}
	}
	date, err := ParseDate(due)
	if err != nil {
		return Task{}, &ValidationError{Index: -1, Fields: []string{"due_date"}, Reason: err.Error()}
	}

	deps := make([]ID, 0, len(in.Dependencies))
	for _, d := range in.Dependencies {
		if d = strings.TrimSpace(d); d != "" {
			deps = append(deps, ID(d))
		}
	}

	t := Task{
		ID:             id,
		Title:          title,
		DueDate:        date,
		Importance:     parseLeadingInt(in.Importance),
		EstimatedHours: float64(parseLeadingInt(in.EstimatedHours)),
		Dependencies:   deps,
	}
	t.Normalize()
	return t, nil
}

// parseLeadingInt reads an optional sign and leading digits ("8", " 8h", "-3").
// Anything else yields 0, which Normalize turns into a default.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func missingFields(title, due string) []string {
	var fields []string
	if title == "" {
		fields = append(fields, "title")
	}
	if due == "" {
		fields = append(fields, "due_date")
	}
	return fields
}
