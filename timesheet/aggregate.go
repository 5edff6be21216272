package timesheet

import (
	"sort"
	"time"

	"punchdeck.com/punchdeck/utils"
)

// ScheduleConfig carries the expected-hours policy: which weekdays
// count as work days, how long a standard shift is, and the reference
// timezone all calendar-day math is evaluated in. The work week is
// explicit configuration, not a constant baked into call sites.
type ScheduleConfig struct {
	Location     *time.Location
	WorkDays     map[time.Weekday]bool
	ShiftMinutes int

	// Holidays are local calendar days ("2006-01-02") that carry no
	// expected hours even when they fall on a work day. Nil means none.
	Holidays map[string]bool
}

// DefaultWorkWeek is Monday through Friday.
func DefaultWorkWeek() map[time.Weekday]bool {
	return map[time.Weekday]bool{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
}

// PayPeriodStats summarizes worked vs expected minutes for a range.
// DifferenceMinutes is signed; negative means under target.
type PayPeriodStats struct {
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	TotalMinutes      int       `json:"totalMinutes"`
	PotentialMinutes  int       `json:"potentialMinutes"`
	DifferenceMinutes int       `json:"differenceMinutes"`
}

// DayData is the per-day breakdown within a range. Morning and
// Afternoon are the first two sessions of the day for legacy display;
// Sessions always carries the full list.
type DayData struct {
	Date         time.Time `json:"date"`
	Morning      *Session  `json:"morning"`
	Afternoon    *Session  `json:"afternoon"`
	TotalMinutes int       `json:"totalMinutes"`
	Sessions     []Session `json:"sessions"`
}

// CalcPeriodStats computes totals for [start, end]. The range need not
// be a pay period; single-day and custom ranges work the same way.
// Open sessions contribute their stored duration, which is zero; live
// elapsed time is a presentation concern.
func CalcPeriodStats(start, end time.Time, sessions []Session, sched ScheduleConfig) PayPeriodStats {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}

	potential := 0
	for d := startOfLocalDay(start, sched.Location); !d.After(end); d = d.AddDate(0, 0, 1) {
		if sched.WorkDays[d.Weekday()] && !sched.Holidays[d.Format("2006-01-02")] {
			potential += sched.ShiftMinutes
		}
	}

	return PayPeriodStats{
		StartDate:         start,
		EndDate:           end,
		TotalMinutes:      total,
		PotentialMinutes:  potential,
		DifferenceMinutes: total - potential,
	}
}

// GroupSessionsByDay buckets sessions by the local calendar day of
// their punch-in (punch-out when the punch-in is absent). Every day in
// [start, end] appears in the result, including days with no sessions.
func GroupSessionsByDay(start, end time.Time, sessions []Session, loc *time.Location) []DayData {
	buckets := utils.GroupBy(sessions, func(s Session) string {
		return dayKey(s, loc)
	})

	var days []DayData
	for d := startOfLocalDay(start, loc); !d.After(end); d = d.AddDate(0, 0, 1) {
		daySessions := buckets[d.Format("2006-01-02")]
		if daySessions == nil {
			// empty days marshal as [], not null
			daySessions = []Session{}
		}
		sort.SliceStable(daySessions, func(i, j int) bool {
			a, b := daySessions[i].PunchIn, daySessions[j].PunchIn
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})

		total := 0
		for _, s := range daySessions {
			total += s.DurationMinutes
		}

		day := DayData{
			Date:         d,
			TotalMinutes: total,
			Sessions:     daySessions,
		}
		if len(daySessions) > 0 {
			day.Morning = &daySessions[0]
		}
		if len(daySessions) > 1 {
			day.Afternoon = &daySessions[1]
		}
		days = append(days, day)
	}

	return days
}

func dayKey(s Session, loc *time.Location) string {
	t := s.PunchIn
	if t == nil {
		t = s.PunchOut
	}
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02")
}

func startOfLocalDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
