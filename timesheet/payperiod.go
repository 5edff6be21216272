package timesheet

import (
	"fmt"
	"time"
)

// PayPeriod is a biweekly accounting window: the 1st-14th or the
// 15th-last day of a calendar month, evaluated in the reference
// timezone. Start and End are absolute instants; End is 23:59:59.999 of
// the last local day.
type PayPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// PeriodForDate returns the pay period containing t. The day-of-month
// split is evaluated after converting t into loc.
func PeriodForDate(t time.Time, loc *time.Location) PayPeriod {
	local := t.In(loc)
	year, month, day := local.Date()

	if day <= 14 {
		return makePeriod(year, month, 1, 14, loc)
	}
	return makePeriod(year, month, 15, lastDayOfMonth(year, month), loc)
}

// PreviousPeriod steps to the adjacent earlier period. Stepping keys off
// the local day-of-month of p.Start only.
func PreviousPeriod(p PayPeriod, loc *time.Location) PayPeriod {
	start := p.Start.In(loc)
	year, month, day := start.Date()

	if day == 1 {
		// second half of the prior month
		prev := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		py, pm, _ := prev.Date()
		return makePeriod(py, pm, 15, lastDayOfMonth(py, pm), loc)
	}
	return makePeriod(year, month, 1, 14, loc)
}

// NextPeriod steps to the adjacent later period.
func NextPeriod(p PayPeriod, loc *time.Location) PayPeriod {
	start := p.Start.In(loc)
	year, month, day := start.Date()

	if day == 1 {
		return makePeriod(year, month, 15, lastDayOfMonth(year, month), loc)
	}
	next := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	ny, nm, _ := next.Date()
	return makePeriod(ny, nm, 1, 14, loc)
}

// IsCurrentPeriod reports whether now falls within [Start, End].
func IsCurrentPeriod(p PayPeriod) bool {
	now := time.Now()
	return !now.Before(p.Start) && !now.After(p.End)
}

func makePeriod(year int, month time.Month, fromDay, toDay int, loc *time.Location) PayPeriod {
	start := time.Date(year, month, fromDay, 0, 0, 0, 0, loc)
	end := time.Date(year, month, toDay, 23, 59, 59, 999_000_000, loc)
	return PayPeriod{
		Start: start,
		End:   end,
		Label: periodLabel(start, end),
	}
}

func lastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func periodLabel(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d, %d", start.Month(), start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", start.Month(), start.Day(), end.Month(), end.Day(), start.Year())
}
