package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchdeck.com/punchdeck/utils"
)

var vancouver = utils.LoadTimezone("America/Vancouver")

func localDay(p PayPeriod, loc *time.Location) (int, int) {
	return p.Start.In(loc).Day(), p.End.In(loc).Day()
}

func TestPeriodForDate(t *testing.T) {
	tests := []struct {
		name      string
		instant   time.Time
		wantStart int
		wantEnd   int
		wantLabel string
	}{
		{
			name:      "first half",
			instant:   time.Date(2025, 3, 7, 12, 0, 0, 0, vancouver),
			wantStart: 1,
			wantEnd:   14,
			wantLabel: "March 1-14, 2025",
		},
		{
			name:      "last minute of first half",
			instant:   time.Date(2025, 3, 14, 23, 59, 0, 0, vancouver),
			wantStart: 1,
			wantEnd:   14,
			wantLabel: "March 1-14, 2025",
		},
		{
			name:      "first minute of second half",
			instant:   time.Date(2025, 3, 15, 0, 0, 0, 0, vancouver),
			wantStart: 15,
			wantEnd:   31,
			wantLabel: "March 15-31, 2025",
		},
		{
			name:      "february second half",
			instant:   time.Date(2025, 2, 20, 12, 0, 0, 0, vancouver),
			wantStart: 15,
			wantEnd:   28,
			wantLabel: "February 15-28, 2025",
		},
		{
			name:      "leap february",
			instant:   time.Date(2024, 2, 29, 12, 0, 0, 0, vancouver),
			wantStart: 15,
			wantEnd:   29,
			wantLabel: "February 15-29, 2024",
		},
		{
			name:      "thirty day month",
			instant:   time.Date(2025, 4, 28, 12, 0, 0, 0, vancouver),
			wantStart: 15,
			wantEnd:   30,
			wantLabel: "April 15-30, 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeriodForDate(tt.instant, vancouver)
			gotStart, gotEnd := localDay(p, vancouver)
			assert.Equal(t, tt.wantStart, gotStart)
			assert.Equal(t, tt.wantEnd, gotEnd)
			assert.Equal(t, tt.wantLabel, p.Label)
		})
	}
}

func TestPeriodForDateUsesReferenceZone(t *testing.T) {
	// Mar 15 04:00 UTC is still Mar 14 in Vancouver
	instant := time.Date(2025, 3, 15, 4, 0, 0, 0, time.UTC)
	p := PeriodForDate(instant, vancouver)
	start, end := localDay(p, vancouver)
	assert.Equal(t, 1, start)
	assert.Equal(t, 14, end)
}

func TestPeriodBoundariesAreInclusive(t *testing.T) {
	p := PeriodForDate(time.Date(2025, 3, 7, 0, 0, 0, 0, vancouver), vancouver)

	local := p.Start.In(vancouver)
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, 0, local.Minute())

	localEnd := p.End.In(vancouver)
	assert.Equal(t, 23, localEnd.Hour())
	assert.Equal(t, 59, localEnd.Minute())
	assert.Equal(t, 59, localEnd.Second())
	assert.Equal(t, 999_000_000, localEnd.Nanosecond())
}

func TestPreviousPeriod(t *testing.T) {
	t.Run("from first half to prior month second half", func(t *testing.T) {
		p := PeriodForDate(time.Date(2025, 3, 7, 0, 0, 0, 0, vancouver), vancouver)
		prev := PreviousPeriod(p, vancouver)
		start, end := localDay(prev, vancouver)
		assert.Equal(t, 15, start)
		assert.Equal(t, 28, end)
		assert.Equal(t, time.February, prev.Start.In(vancouver).Month())
	})

	t.Run("from second half to same month first half", func(t *testing.T) {
		p := PeriodForDate(time.Date(2025, 3, 20, 0, 0, 0, 0, vancouver), vancouver)
		prev := PreviousPeriod(p, vancouver)
		start, end := localDay(prev, vancouver)
		assert.Equal(t, 1, start)
		assert.Equal(t, 14, end)
		assert.Equal(t, time.March, prev.Start.In(vancouver).Month())
	})
}

func TestNextPeriod(t *testing.T) {
	t.Run("from first half to same month second half", func(t *testing.T) {
		p := PeriodForDate(time.Date(2025, 1, 7, 0, 0, 0, 0, vancouver), vancouver)
		next := NextPeriod(p, vancouver)
		start, end := localDay(next, vancouver)
		assert.Equal(t, 15, start)
		assert.Equal(t, 31, end)
		assert.Equal(t, time.January, next.Start.In(vancouver).Month())
	})

	t.Run("from second half to next month first half", func(t *testing.T) {
		p := PeriodForDate(time.Date(2025, 1, 20, 0, 0, 0, 0, vancouver), vancouver)
		next := NextPeriod(p, vancouver)
		start, end := localDay(next, vancouver)
		assert.Equal(t, 1, start)
		assert.Equal(t, 14, end)
		assert.Equal(t, time.February, next.Start.In(vancouver).Month())
	})

	t.Run("december rolls into january", func(t *testing.T) {
		p := PeriodForDate(time.Date(2025, 12, 20, 0, 0, 0, 0, vancouver), vancouver)
		next := NextPeriod(p, vancouver)
		assert.Equal(t, time.January, next.Start.In(vancouver).Month())
		assert.Equal(t, 2026, next.Start.In(vancouver).Year())
	})
}

func TestStepRoundTrip(t *testing.T) {
	p := PeriodForDate(time.Date(2025, 6, 3, 0, 0, 0, 0, vancouver), vancouver)
	back := PreviousPeriod(NextPeriod(p, vancouver), vancouver)
	require.True(t, p.Start.Equal(back.Start))
	require.True(t, p.End.Equal(back.End))
	assert.Equal(t, p.Label, back.Label)
}

func TestIsCurrentPeriod(t *testing.T) {
	current := PeriodForDate(time.Now(), vancouver)
	assert.True(t, IsCurrentPeriod(current))
	assert.False(t, IsCurrentPeriod(PreviousPeriod(current, vancouver)))
	assert.False(t, IsCurrentPeriod(NextPeriod(current, vancouver)))
}
