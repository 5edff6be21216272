package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

func TestGeneratePunchEvents(t *testing.T) {
	loc := utils.LoadTimezone("America/Vancouver")
	sched := timesheet.ScheduleConfig{
		Location:     loc,
		WorkDays:     timesheet.DefaultWorkWeek(),
		ShiftMinutes: 480,
	}

	// a Wednesday, so today gets an open IN
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, loc)
	events := GeneratePunchEvents(now, sched)

	assert.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, "demo-today-in", last.ExternalID)
	assert.Equal(t, model.EventIn, last.EventType)

	seen := map[string]bool{}
	for _, e := range events {
		assert.False(t, seen[e.ExternalID], "duplicate external id %s", e.ExternalID)
		seen[e.ExternalID] = true
		assert.True(t, sched.WorkDays[e.Timestamp.In(loc).Weekday()],
			"punch on a non-workday: %s", e.Timestamp)
	}

	sessions := timesheet.Reconcile(events)
	for _, s := range sessions[:len(sessions)-1] {
		assert.NotNil(t, s.PunchOut)
		assert.Greater(t, s.DurationMinutes, 420)
	}
	open := sessions[len(sessions)-1]
	assert.Nil(t, open.PunchOut)
}

func TestGeneratePunchEventsOffDay(t *testing.T) {
	loc := utils.LoadTimezone("America/Vancouver")
	sched := timesheet.ScheduleConfig{
		Location:     loc,
		WorkDays:     timesheet.DefaultWorkWeek(),
		ShiftMinutes: 480,
	}

	// a Sunday, no open session for today
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, loc)
	events := GeneratePunchEvents(now, sched)

	for _, e := range events {
		assert.NotEqual(t, "demo-today-in", e.ExternalID)
	}
}
