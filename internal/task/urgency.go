package task

import (
	"fmt"
	"math"
	"time"
)

// UrgencyKind classifies how close a due date is.
type UrgencyKind string

const (
	UrgencyOverdue  UrgencyKind = "overdue"
	UrgencyToday    UrgencyKind = "today"
	UrgencyTomorrow UrgencyKind = "tomorrow"
	UrgencyUpcoming UrgencyKind = "upcoming"
)

// Urgency is the due-date classification of a task. It is independent of any score.
type Urgency struct {
	DaysLeft int
	Kind     UrgencyKind
	Overdue  bool
	Label    string
}

// ComputeUrgency classifies due relative to today's calendar date (in today's location).
// ok is false when due is unset: that means "no due-date information", not zero urgency.
func ComputeUrgency(due Date, today time.Time) (u Urgency, ok bool) {
	if due.IsZero() {
		return Urgency{}, false
	}
	start := DateOf(today).Time()
	days := int(math.Ceil(due.Time().Sub(start).Hours() / 24))

	u = Urgency{DaysLeft: days, Overdue: days < 0}
	switch {
	case days < 0:
		u.Kind = UrgencyOverdue
		u.Label = fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		u.Kind = UrgencyToday
		u.Label = "due today"
	case days == 1:
		u.Kind = UrgencyTomorrow
		u.Label = "due tomorrow"
	default:
		u.Kind = UrgencyUpcoming
		u.Label = fmt.Sprintf("due in %d days", days)
	}
	return u, true
}

// Urgency is shorthand for ComputeUrgency(t.DueDate, today).
func (t Task) Urgency(today time.Time) (Urgency, bool) {
	return ComputeUrgency(t.DueDate, today)
}
