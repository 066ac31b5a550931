// Package schedule computes when the reminders of an order become due.
package schedule

import (
	"time"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

// DayBeforeOffset is how long before pickup the day-before reminder fires.
const DayBeforeOffset = 24 * time.Hour

// Slot is a reminder kind with its due time.
type Slot struct {
	Kind model.Kind
	At   time.Time
}

// Planner holds the timing rules for reminders.
type Planner struct {
	Location     *time.Location // calendar used for the same-day rule
	SameDayHour  int            // local hour of the same-day reminder
	OverdueAfter time.Duration  // overdue reminder delay after pickup, 0 disables it
}

// NewPlanner returns a planner with the given rules. A nil location means UTC.
func NewPlanner(loc *time.Location, sameDayHour int, overdueAfter time.Duration) Planner {
	if loc == nil {
		loc = time.UTC
	}

	return Planner{Location: loc, SameDayHour: sameDayHour, OverdueAfter: overdueAfter}
}

// Plan returns the reminders that are still ahead of now for a pickup time.
//
// A slot survives only if it is strictly after now. The same-day slot must also
// be strictly before pickup.
func (p Planner) Plan(pickupAt, now time.Time) []Slot {
	var slots []Slot

	if dayBefore := pickupAt.Add(-DayBeforeOffset); dayBefore.After(now) {
		slots = append(slots, Slot{Kind: model.KindDayBefore, At: dayBefore})
	}

	if sameDay := p.sameDay(pickupAt); sameDay.After(now) && sameDay.Before(pickupAt) {
		slots = append(slots, Slot{Kind: model.KindSameDay, At: sameDay})
	}

	if p.OverdueAfter > 0 {
		if overdue := pickupAt.Add(p.OverdueAfter); overdue.After(now) {
			slots = append(slots, Slot{Kind: model.KindOverdue, At: overdue})
		}
	}

	return slots
}

func (p Planner) sameDay(pickupAt time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	local := pickupAt.In(loc)

	return time.Date(local.Year(), local.Month(), local.Day(), p.SameDayHour, 0, 0, 0, loc)
}
