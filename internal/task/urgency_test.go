package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeUrgency(t *testing.T) {
	// Late in the evening, to make sure time of day does not leak into the count.
	today := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		due     Date
		days    int
		kind    UrgencyKind
		overdue bool
		label   string
	}{
		{NewDate(2025, time.March, 7), -3, UrgencyOverdue, true, "overdue by 3 days"},
		{NewDate(2025, time.March, 9), -1, UrgencyOverdue, true, "overdue by 1 days"},
		{NewDate(2025, time.March, 10), 0, UrgencyToday, false, "due today"},
		{NewDate(2025, time.March, 11), 1, UrgencyTomorrow, false, "due tomorrow"},
		{NewDate(2025, time.March, 15), 5, UrgencyUpcoming, false, "due in 5 days"},
		{NewDate(2025, time.April, 1), 22, UrgencyUpcoming, false, "due in 22 days"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			u, ok := ComputeUrgency(tt.due, today)
			assert.True(t, ok)
			assert.Equal(t, tt.days, u.DaysLeft)
			assert.Equal(t, tt.kind, u.Kind)
			assert.Equal(t, tt.overdue, u.Overdue)
			assert.Equal(t, tt.label, u.Label)
		})
	}
}

func TestComputeUrgency_MissingDueDate(t *testing.T) {
	u, ok := ComputeUrgency(Date{}, time.Now())
	assert.False(t, ok)
	assert.Equal(t, Urgency{}, u)
}

func TestComputeUrgency_UsesLocalCalendarDay(t *testing.T) {
	// 01:00 on the 11th in UTC+2 is still the 10th in UTC; the local date wins.
	zone := time.FixedZone("UTC+2", 2*60*60)
	today := time.Date(2025, time.March, 11, 1, 0, 0, 0, zone)

	u, ok := validTask("1").Urgency(today)
	assert.True(t, ok)
	assert.Equal(t, -1, u.DaysLeft)
}
