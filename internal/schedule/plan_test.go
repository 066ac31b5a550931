package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	return loc
}

func TestPlan_BothRemindersWellAhead(t *testing.T) {
	loc := mustLocation(t, "Europe/Moscow")
	p := NewPlanner(loc, 9, 0)

	pickup := time.Date(2026, 3, 10, 15, 0, 0, 0, loc)
	now := pickup.Add(-48 * time.Hour)

	slots := p.Plan(pickup, now)
	require.Len(t, slots, 2)

	assert.Equal(t, model.KindDayBefore, slots[0].Kind)
	assert.True(t, slots[0].At.Equal(pickup.Add(-24*time.Hour)))

	assert.Equal(t, model.KindSameDay, slots[1].Kind)
	assert.True(t, slots[1].At.Equal(time.Date(2026, 3, 10, 9, 0, 0, 0, loc)))
}

func TestPlan_PickupWithin24HoursHasNoDayBefore(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	now := pickup.Add(-23 * time.Hour)

	slots := p.Plan(pickup, now)
	require.Len(t, slots, 1)
	assert.Equal(t, model.KindSameDay, slots[0].Kind)
}

func TestPlan_DayBeforeExactlyNowIsDiscarded(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for _, s := range p.Plan(pickup, pickup.Add(-24*time.Hour)) {
		assert.NotEqual(t, model.KindDayBefore, s.Kind)
	}
}

func TestPlan_PickupBeforeNineHasNoSameDay(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	now := pickup.Add(-72 * time.Hour)

	slots := p.Plan(pickup, now)
	require.Len(t, slots, 1)
	assert.Equal(t, model.KindDayBefore, slots[0].Kind)
}

func TestPlan_PickupAtNineHasNoSameDay(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, s := range p.Plan(pickup, pickup.Add(-72*time.Hour)) {
		assert.NotEqual(t, model.KindSameDay, s.Kind)
	}
}

func TestPlan_SameDayAlreadyPassed(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, p.Plan(pickup, now))
}

func TestPlan_SameDayUsesBusinessCalendar(t *testing.T) {
	loc := mustLocation(t, "Europe/Moscow")
	p := NewPlanner(loc, 9, 0)

	// 22:30 UTC on the 9th is 01:30 on the 10th in Moscow; 09:00 local is after pickup.
	pickup := time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)
	now := pickup.Add(-72 * time.Hour)

	for _, s := range p.Plan(pickup, now) {
		assert.NotEqual(t, model.KindSameDay, s.Kind)
	}
}

func TestPlan_Overdue(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 2*time.Hour)

	pickup := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)

	slots := p.Plan(pickup, now)
	require.Len(t, slots, 1)
	assert.Equal(t, model.KindOverdue, slots[0].Kind)
	assert.True(t, slots[0].At.Equal(pickup.Add(2*time.Hour)))
}

func TestPlan_PickupInPast(t *testing.T) {
	p := NewPlanner(time.UTC, 9, 0)

	pickup := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Empty(t, p.Plan(pickup, pickup.Add(time.Minute)))
}
