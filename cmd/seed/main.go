package main

import (
	"context"
	"log"
	"time"

	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/demo"
	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

// Seeds the punch_events table with two weeks of demo punches. Safe to
// rerun, inserts are keyed on external id.
func main() {
	ctx := context.Background()

	cfg, err := devops.LoadAppConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dm, err := core.New(cfg.DSN, 2)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer dm.Close()

	st := store.NewPunchStore(dm)
	sched := timesheet.ScheduleConfig{
		Location:     utils.LoadTimezone(cfg.Timezone),
		WorkDays:     cfg.WorkWeek(),
		ShiftMinutes: cfg.ShiftMinutes,
		Holidays:     cfg.HolidaySet(),
	}

	events := demo.GeneratePunchEvents(time.Now(), sched)
	for _, e := range events {
		if _, err := st.InsertEvent(ctx, e); err != nil {
			log.Fatalf("insert %s: %v", e.ExternalID, err)
		}
	}

	log.Printf("seeded %d punch events", len(events))
}
