package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrDuplicateID is returned when a task id is already present in the store.
	ErrDuplicateID = errors.New("duplicate task id")
)

// ValidationError reports a task rejected at admission. Index is the position in a
// bulk import, or -1 for a single task.
type ValidationError struct {
	Index  int
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Index >= 0 {
		fmt.Fprintf(&sb, "task at index %d", e.Index)
	} else {
		sb.WriteString("task")
	}
	switch {
	case e.Reason != "" && len(e.Fields) > 0:
		fmt.Fprintf(&sb, " has invalid %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	case e.Reason != "":
		fmt.Fprintf(&sb, " is invalid: %s", e.Reason)
	default:
		fmt.Fprintf(&sb, " is missing required fields (%s)", strings.Join(e.Fields, ", "))
	}
	return sb.String()
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
