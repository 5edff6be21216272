package timesheet

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/utils"
)

func schedule() ScheduleConfig {
	return ScheduleConfig{
		Location:     vancouver,
		WorkDays:     DefaultWorkWeek(),
		ShiftMinutes: 480,
	}
}

func session(in, out time.Time) Session {
	return Session{
		Date:            in,
		PunchIn:         utils.Ptr(in),
		PunchOut:        utils.Ptr(out),
		DurationMinutes: int(out.Sub(in).Minutes()),
	}
}

func TestCalcPeriodStatsPotential(t *testing.T) {
	// Mon Mar 3 through Fri Mar 7 2025: five qualifying work days
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 7, 23, 59, 59, 0, vancouver)

	stats := CalcPeriodStats(start, end, nil, schedule())
	assert.Equal(t, 5*480, stats.PotentialMinutes)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, -2400, stats.DifferenceMinutes)
}

func TestCalcPeriodStatsHolidayContributesNothing(t *testing.T) {
	// Mon Mar 3 through Fri Mar 7 2025, with the Wednesday off
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 7, 23, 59, 59, 0, vancouver)

	sched := schedule()
	sched.Holidays = map[string]bool{"2025-03-05": true}

	stats := CalcPeriodStats(start, end, nil, sched)
	assert.Equal(t, 4*480, stats.PotentialMinutes)
}

func TestCalcPeriodStatsWeekendContributesNothing(t *testing.T) {
	// Sat Mar 8 and Sun Mar 9 2025
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 9, 23, 59, 59, 0, vancouver)

	stats := CalcPeriodStats(start, end, nil, schedule())
	assert.Equal(t, 0, stats.PotentialMinutes)
}

func TestCalcPeriodStatsTotals(t *testing.T) {
	day := time.Date(2025, 3, 4, 9, 0, 0, 0, vancouver)
	sessions := []Session{
		session(day, day.Add(3*time.Hour)),
		session(day.Add(4*time.Hour), day.Add(8*time.Hour)),
	}

	start := time.Date(2025, 3, 4, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 4, 23, 59, 59, 0, vancouver)

	stats := CalcPeriodStats(start, end, sessions, schedule())
	assert.Equal(t, 420, stats.TotalMinutes)
	assert.Equal(t, 480, stats.PotentialMinutes)
	assert.Equal(t, -60, stats.DifferenceMinutes)
}

func TestCalcPeriodStatsCustomWorkWeek(t *testing.T) {
	sched := schedule()
	sched.WorkDays = map[time.Weekday]bool{
		time.Tuesday: true, time.Wednesday: true, time.Thursday: true,
		time.Friday: true, time.Saturday: true,
	}

	// Mon Mar 3 through Sun Mar 9 2025: Tue-Sat gives five days
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 9, 23, 59, 59, 0, vancouver)

	stats := CalcPeriodStats(start, end, nil, sched)
	assert.Equal(t, 2400, stats.PotentialMinutes)
}

func TestCalcPeriodStatsFullPeriod(t *testing.T) {
	// March 1-14 2025: Saturdays 1/8, Sundays 2/9 excluded -> 10 work days
	p := PeriodForDate(time.Date(2025, 3, 5, 0, 0, 0, 0, vancouver), vancouver)
	stats := CalcPeriodStats(p.Start, p.End, nil, schedule())
	assert.Equal(t, 10*480, stats.PotentialMinutes)
}

func TestGroupSessionsByDayCoversEveryDay(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 7, 23, 59, 59, 0, vancouver)

	day := time.Date(2025, 3, 4, 9, 0, 0, 0, vancouver)
	days := GroupSessionsByDay(start, end, []Session{session(day, day.Add(8*time.Hour))}, vancouver)

	require.Len(t, days, 5)
	for i, d := range days {
		assert.Equal(t, 3+i, d.Date.In(vancouver).Day())
	}

	assert.Empty(t, days[0].Sessions)
	assert.Equal(t, 0, days[0].TotalMinutes)
	assert.Nil(t, days[0].Morning)

	// empty days serialize their session list as [], not null
	require.NotNil(t, days[0].Sessions)
	encoded, err := json.Marshal(days[0])
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"sessions":[]`)

	require.Len(t, days[1].Sessions, 1)
	assert.Equal(t, 480, days[1].TotalMinutes)
	require.NotNil(t, days[1].Morning)
	assert.Nil(t, days[1].Afternoon)
}

func TestGroupSessionsByDayMorningAfternoon(t *testing.T) {
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, vancouver)
	morning := session(day.Add(9*time.Hour), day.Add(12*time.Hour))
	afternoon := session(day.Add(13*time.Hour), day.Add(17*time.Hour))
	evening := session(day.Add(19*time.Hour), day.Add(20*time.Hour))

	// deliberately out of order
	days := GroupSessionsByDay(day, day.Add(23*time.Hour), []Session{evening, afternoon, morning}, vancouver)

	require.Len(t, days, 1)
	d := days[0]
	require.Len(t, d.Sessions, 3)
	assert.Equal(t, morning.PunchIn, d.Morning.PunchIn)
	assert.Equal(t, afternoon.PunchIn, d.Afternoon.PunchIn)
	assert.Equal(t, evening.PunchIn, d.Sessions[2].PunchIn)
	assert.Equal(t, 480, d.TotalMinutes)
}

func TestGroupSessionsByDayUsesLocalDay(t *testing.T) {
	// 06:00 UTC on Mar 5 is 22:00 Mar 4 in Vancouver
	in := time.Date(2025, 3, 5, 6, 0, 0, 0, time.UTC)
	s := session(in, in.Add(time.Hour))

	start := time.Date(2025, 3, 4, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 5, 23, 59, 59, 0, vancouver)
	days := GroupSessionsByDay(start, end, []Session{s}, vancouver)

	require.Len(t, days, 2)
	assert.Len(t, days[0].Sessions, 1)
	assert.Empty(t, days[1].Sessions)
}

func TestGroupSessionsByDayPunchOutFallback(t *testing.T) {
	out := time.Date(2025, 3, 4, 17, 0, 0, 0, vancouver)
	s := Session{Date: out, PunchOut: utils.Ptr(out)}

	start := time.Date(2025, 3, 4, 0, 0, 0, 0, vancouver)
	days := GroupSessionsByDay(start, start.Add(23*time.Hour), []Session{s}, vancouver)

	require.Len(t, days, 1)
	assert.Len(t, days[0].Sessions, 1)
}

func TestGroupedTotalsMatchAggregate(t *testing.T) {
	events := []model.PunchEvent{
		{ID: 1, EventType: model.EventIn, Timestamp: time.Date(2025, 3, 3, 9, 0, 0, 0, vancouver)},
		{ID: 2, EventType: model.EventOut, Timestamp: time.Date(2025, 3, 3, 12, 30, 0, 0, vancouver)},
		{ID: 3, EventType: model.EventIn, Timestamp: time.Date(2025, 3, 4, 9, 0, 0, 0, vancouver)},
		{ID: 4, EventType: model.EventOut, Timestamp: time.Date(2025, 3, 4, 17, 15, 0, 0, vancouver)},
		{ID: 5, EventType: model.EventIn, Timestamp: time.Date(2025, 3, 5, 9, 0, 0, 0, vancouver)},
	}
	sessions := Reconcile(events)

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, vancouver)
	end := time.Date(2025, 3, 7, 23, 59, 59, 0, vancouver)

	stats := CalcPeriodStats(start, end, sessions, schedule())
	days := GroupSessionsByDay(start, end, sessions, vancouver)

	sum := 0
	count := 0
	for _, d := range days {
		sum += d.TotalMinutes
		count += len(d.Sessions)
	}
	assert.Equal(t, stats.TotalMinutes, sum)
	assert.Equal(t, len(sessions), count)
}
