// Package demo generates plausible punch history for local development
// and seeding, shaped like real channel traffic.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/timesheet"
)

const demoUserID = "demo_user"

// GeneratePunchEvents produces paired punches for the last 14 days in
// the given location, skipping non-workdays, plus an open IN for today
// when today is a workday. External ids are deterministic per day so
// reseeding stays idempotent at the storage layer.
func GeneratePunchEvents(now time.Time, sched timesheet.ScheduleConfig) []model.PunchEvent {
	loc := sched.Location
	now = now.In(loc)
	var events []model.PunchEvent

	for daysAgo := 13; daysAgo >= 1; daysAgo-- {
		day := now.AddDate(0, 0, -daysAgo)
		if !sched.WorkDays[day.Weekday()] {
			continue
		}

		in := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, loc).
			Add(time.Duration(rand.Intn(21)-10) * time.Minute)
		events = append(events, model.PunchEvent{
			UserID:     demoUserID,
			EventType:  model.EventIn,
			Timestamp:  in,
			ExternalID: fmt.Sprintf("demo-%d-morning-in", daysAgo),
			RawText:    "In",
		})

		out := time.Date(day.Year(), day.Month(), day.Day(), 17, 30, 0, 0, loc).
			Add(time.Duration(rand.Intn(41)-20) * time.Minute)
		events = append(events, model.PunchEvent{
			UserID:     demoUserID,
			EventType:  model.EventOut,
			Timestamp:  out,
			ExternalID: fmt.Sprintf("demo-%d-afternoon-out", daysAgo),
			RawText:    "Out",
		})
	}

	if sched.WorkDays[now.Weekday()] {
		in := time.Date(now.Year(), now.Month(), now.Day(), 9, 5, 0, 0, loc)
		events = append(events, model.PunchEvent{
			UserID:     demoUserID,
			EventType:  model.EventIn,
			Timestamp:  in,
			ExternalID: "demo-today-in",
			RawText:    "In",
		})
	}

	return events
}
