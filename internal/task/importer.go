package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotArray is returned when an import document is valid JSON but not an array.
var ErrNotArray = errors.New("invalid JSON format, expected an array of tasks")

// ParseImport decodes a JSON array of task-like objects. Elements without an id get
// base+index. Numeric fields are read leniently (numbers or numeric strings, integer
// prefix only) and fall back to defaults. The first element lacking a title or due
// date fails the whole import with a *ValidationError naming its index.
func ParseImport(data []byte, base int64) ([]Task, error) {
	elems, err := splitImport(data)
	if err != nil {
		return nil, err
	}
	return importElems(elems, base)
}

// Import is ParseImport with the base taken from g, so imported ids never collide
// with ids the generator hands out later.
func (g *IDGenerator) Import(data []byte) ([]Task, error) {
	elems, err := splitImport(data)
	if err != nil {
		return nil, err
	}
	return importElems(elems, g.Reserve(len(elems)))
}

func splitImport(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		var probe any
		return nil, fmt.Errorf("error parsing JSON: %w", json.Unmarshal(trimmed, &probe))
	}
	if trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return elems, nil
}

func importElems(elems []json.RawMessage, base int64) ([]Task, error) {
	tasks := make([]Task, 0, len(elems))
	for i, elem := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			return nil, &ValidationError{Index: i, Fields: []string{"title", "due_date"}}
		}
		t, err := importOne(obj, i, base)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func importOne(obj map[string]json.RawMessage, index int, base int64) (Task, error) {
	title := rawText(obj["title"])
	due := rawText(obj["due_date"])
	if strings.TrimSpace(title) == "" || strings.TrimSpace(due) == "" {
		return Task{}, &ValidationError{Index: index, Fields: []string{"title", "due_date"}}
	}
	date, err := ParseDate(due)
	if err != nil {
		return Task{}, &ValidationError{Index: index, Fields: []string{"due_date"}, Reason: err.Error()}
	}

	id := rawID(obj["id"])
	if id == "" {
		id = ID(strconv.FormatInt(base+int64(index), 10))
	}

	t := Task{
		ID:             id,
		Title:          title,
		DueDate:        date,
		Importance:     rawInt(obj["importance"]),
		EstimatedHours: float64(rawInt(obj["estimated_hours"])),
		Dependencies:   rawDeps(obj["dependencies"]),
		Completed:      truthy(obj["completed"]),
	}
	t.Normalize()
	return t, nil
}

// rawText returns strings as-is and numbers in their literal form; anything else is "".
func rawText(m json.RawMessage) string {
	var v any
	if err := decodeNumber(m, &v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	}
	return ""
}

// rawID treats falsy values (absent, null, 0, "") as "no id".
func rawID(m json.RawMessage) ID {
	var v any
	if err := decodeNumber(m, &v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return ID(strings.TrimSpace(x))
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return idFromNumber(x)
	}
	return ""
}

// rawInt reads the integer prefix of a number or numeric string; 0 when there is none.
func rawInt(m json.RawMessage) int {
	var v any
	if err := decodeNumber(m, &v); err != nil {
		return 0
	}
	switch x := v.(type) {
	case string:
		return parseLeadingInt(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return 0
		}
		return int(math.Trunc(f))
	}
	return 0
}

// rawDeps keeps dependencies only when they are an array; scalar entries become ids.
func rawDeps(m json.RawMessage) []ID {
	var items []json.RawMessage
	if err := json.Unmarshal(m, &items); err != nil {
		return []ID{}
	}
	deps := make([]ID, 0, len(items))
	for _, item := range items {
		if id := rawID(item); id != "" {
			deps = append(deps, id)
		}
	}
	return deps
}

// truthy mirrors loose boolean coercion: false, 0, "", null and absence are false.
func truthy(m json.RawMessage) bool {
	var v any
	if err := decodeNumber(m, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	}
	return true
}

func decodeNumber(m json.RawMessage, v *any) error {
	if len(m) == 0 {
		*v = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(m))
	dec.UseNumber()
	return dec.Decode(v)
}
