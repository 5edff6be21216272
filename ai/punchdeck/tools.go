package punchdeck

import (
	"context"
	"encoding/json"
	"time"

	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

type sessionSummary struct {
	Date    string  `json:"date"`
	In      string  `json:"in"`
	Out     string  `json:"out,omitempty"`
	Minutes int     `json:"minutes"`
	Notes   *string `json:"notes,omitempty"`
}

type periodSummary struct {
	Label            string           `json:"label"`
	Start            string           `json:"start"`
	End              string           `json:"end"`
	TotalMinutes     int              `json:"totalMinutes"`
	PotentialMinutes int              `json:"potentialMinutes"`
	DiffMinutes      int              `json:"differenceMinutes"`
	Worked           string           `json:"worked"`
	Sessions         []sessionSummary `json:"sessions"`
}

// PeriodSummaryJSON reconciles the pay period containing the given date
// and returns the result as a JSON string the model can reason over.
func PeriodSummaryJSON(ctx context.Context, st *store.PunchStore, sched timesheet.ScheduleConfig, date time.Time) (string, error) {
	period := timesheet.PeriodForDate(date, sched.Location)

	events, err := st.FetchEventsInRange(ctx, period.Start, period.End)
	if err != nil {
		return "", err
	}

	sessions := timesheet.Reconcile(events)
	stats := timesheet.CalcPeriodStats(period.Start, period.End, sessions, sched)

	out := periodSummary{
		Label:            period.Label,
		Start:            period.Start.Format("2006-01-02"),
		End:              period.End.Format("2006-01-02"),
		TotalMinutes:     stats.TotalMinutes,
		PotentialMinutes: stats.PotentialMinutes,
		DiffMinutes:      stats.DifferenceMinutes,
		Worked:           utils.FormatDuration(stats.TotalMinutes),
	}
	for _, s := range sessions {
		item := sessionSummary{
			Date:    s.Date.In(sched.Location).Format("2006-01-02"),
			Minutes: s.DurationMinutes,
			Notes:   s.Notes,
		}
		if s.PunchIn != nil {
			item.In = s.PunchIn.In(sched.Location).Format("15:04")
		}
		if s.PunchOut != nil {
			item.Out = s.PunchOut.In(sched.Location).Format("15:04")
		}
		out.Sessions = append(out.Sessions, item)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
