package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
)

func day(s string) calendar.Date { return calendar.MustParse(s) }

func TestContaining(t *testing.T) {
	type testCase struct {
		name string
		ref  string
		cfg  cycle.Config
		want cycle.Period
	}

	tests := []testCase{
		{
			name: "StartDayOneIsCalendarMonth",
			ref:  "2024-02-15",
			cfg:  cycle.Config{StartDay: 1},
			want: cycle.Period{Start: day("2024-02-01"), End: day("2024-02-29")},
		},
		{
			name: "OnOrAfterCandidate",
			ref:  "2024-03-10",
			cfg:  cycle.Config{StartDay: 10},
			want: cycle.Period{Start: day("2024-03-10"), End: day("2024-04-09")},
		},
		{
			name: "BeforeCandidate",
			ref:  "2024-03-09",
			cfg:  cycle.Config{StartDay: 10},
			want: cycle.Period{Start: day("2024-02-10"), End: day("2024-03-09")},
		},
		{
			name: "Day31InFebruaryNonLeap",
			ref:  "2023-02-28",
			cfg:  cycle.Config{StartDay: 31},
			want: cycle.Period{Start: day("2023-02-28"), End: day("2023-03-30")},
		},
		{
			name: "Day31InFebruaryLeap",
			ref:  "2024-03-01",
			cfg:  cycle.Config{StartDay: 31},
			want: cycle.Period{Start: day("2024-02-29"), End: day("2024-03-30")},
		},
		{
			name: "Day31BeforeShortMonthStart",
			ref:  "2023-02-27",
			cfg:  cycle.Config{StartDay: 31},
			want: cycle.Period{Start: day("2023-01-31"), End: day("2023-02-27")},
		},
		{
			name: "YearBoundary",
			ref:  "2024-01-03",
			cfg:  cycle.Config{StartDay: 5},
			want: cycle.Period{Start: day("2023-12-05"), End: day("2024-01-04")},
		},
		{
			name: "EndDayOnOrBeforeBoundary",
			ref:  "2024-03-20",
			cfg:  cycle.Config{StartDay: 1, EndDay: new(20)},
			want: cycle.Period{Start: day("2024-02-21"), End: day("2024-03-20")},
		},
		{
			name: "EndDayAfterBoundary",
			ref:  "2024-03-21",
			cfg:  cycle.Config{StartDay: 1, EndDay: new(20)},
			want: cycle.Period{Start: day("2024-03-21"), End: day("2024-04-20")},
		},
		{
			name: "EndDay30ClampedInFebruary",
			ref:  "2023-02-10",
			cfg:  cycle.Config{EndDay: new(30)},
			want: cycle.Period{Start: day("2023-01-31"), End: day("2023-02-28")},
		},
		{
			name: "OutOfRangeStartDayIsNormalised",
			ref:  "2024-04-15",
			cfg:  cycle.Config{StartDay: 0},
			want: cycle.Period{Start: day("2024-04-01"), End: day("2024-04-30")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cycle.Containing(day(tt.ref), tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContaining_ContiguousForEveryAnchor(t *testing.T) {
	configs := make([]cycle.Config, 0, 62)
	for d := 1; d <= 31; d++ {
		configs = append(configs, cycle.Config{StartDay: d}, cycle.Config{EndDay: new(d)})
	}

	start := day("2023-11-01")
	end := day("2025-03-31")

	for _, cfg := range configs {
		for ref := start; !ref.After(end); ref = ref.AddDays(1) {
			p := cycle.Containing(ref, cfg)
			require.True(t, p.Contains(ref), "cfg %+v ref %s period %+v", cfg, ref, p)
			require.Positive(t, p.Len(), "cfg %+v ref %s", cfg, ref)

			next := cycle.Next(p, cfg)
			require.Equal(t, p.End.AddDays(1), next.Start, "gap or overlap after %+v", p)
			require.Equal(t, p, cycle.Prev(next, cfg))
		}
	}
}

func TestPeriod_Helpers(t *testing.T) {
	cfg := cycle.Config{StartDay: 10}
	p := cycle.Containing(day("2024-03-15"), cfg)

	assert.Equal(t, 31, p.Len())
	assert.Len(t, p.Days(), 31)
	assert.Equal(t, day("2024-03-10"), p.Days()[0])

	start, end := p.Bounds(time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, day("2024-04-09"), calendar.DateOf(end))
	assert.Equal(t, 23, end.Hour())

	assert.Equal(t, cycle.Period{Start: day("2024-05-10"), End: day("2024-06-09")}, cycle.Shift(p, cfg, 2))
	assert.Equal(t, cycle.Period{Start: day("2024-01-10"), End: day("2024-02-09")}, cycle.Shift(p, cfg, -2))

	assert.Equal(t, cycle.Current, p.RelationTo(day("2024-03-15")))
	assert.Equal(t, cycle.Past, p.RelationTo(day("2024-04-10")))
	assert.Equal(t, cycle.Future, p.RelationTo(day("2024-03-09")))
}

func TestOverlapping(t *testing.T) {
	cfg := cycle.Config{StartDay: 10}

	got := cycle.Overlapping(day("2024-03-01"), day("2024-05-10"), cfg)
	require.Len(t, got, 4)
	assert.Equal(t, day("2024-02-10"), got[0].Start)
	assert.Equal(t, day("2024-05-10"), got[3].Start)

	assert.Nil(t, cycle.Overlapping(day("2024-05-10"), day("2024-03-01"), cfg))
}
