// Package cycle computes billing cycles: work-months anchored on a configurable day of the month.
package cycle

import (
	"time"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
)

// Config anchors the cycle. When EndDay is set cycles end on that day of the month and start on
// the following day; otherwise they start on StartDay.
type Config struct {
	StartDay int
	EndDay   *int
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start calendar.Date `json:"start"`
	End   calendar.Date `json:"end"`
}

func normDay(day int) int {
	return min(max(day, 1), 31)
}

// Containing returns the cycle that contains ref.
//
// The anchor day is clamped separately in every month it is resolved in, so a cycle anchored on
// the 31st starts on Feb 28 (or 29) and never spills into March.
func Containing(ref calendar.Date, cfg Config) Period {
	if cfg.EndDay != nil {
		return containingByEnd(ref, normDay(*cfg.EndDay))
	}

	return containingByStart(ref, normDay(cfg.StartDay))
}

func containingByStart(ref calendar.Date, day int) Period {
	candidate := calendar.Clamp(ref.Year, ref.Month, day)

	if !ref.Before(candidate) {
		ny, nm := ref.ShiftMonth(1)
		return Period{Start: candidate, End: calendar.Clamp(ny, nm, day).AddDays(-1)}
	}

	py, pm := ref.ShiftMonth(-1)

	return Period{Start: calendar.Clamp(py, pm, day), End: candidate.AddDays(-1)}
}

func containingByEnd(ref calendar.Date, day int) Period {
	boundary := calendar.Clamp(ref.Year, ref.Month, day)

	if !ref.After(boundary) {
		py, pm := ref.ShiftMonth(-1)
		return Period{Start: calendar.Clamp(py, pm, day).AddDays(1), End: boundary}
	}

	ny, nm := ref.ShiftMonth(1)

	return Period{Start: boundary.AddDays(1), End: calendar.Clamp(ny, nm, day)}
}

// Next returns the cycle right after p.
func Next(p Period, cfg Config) Period {
	return Containing(p.End.AddDays(1), cfg)
}

// Prev returns the cycle right before p.
func Prev(p Period, cfg Config) Period {
	return Containing(p.Start.AddDays(-1), cfg)
}

// Shift returns the cycle n cycles away from p (negative n walks backwards).
func Shift(p Period, cfg Config, n int) Period {
	for ; n > 0; n-- {
		p = Next(p, cfg)
	}

	for ; n < 0; n++ {
		p = Prev(p, cfg)
	}

	return p
}

// Overlapping returns, in order, every cycle that intersects [start, end].
func Overlapping(start, end calendar.Date, cfg Config) []Period {
	if end.Before(start) {
		return nil
	}

	var out []Period
	for p := Containing(start, cfg); !p.Start.After(end); p = Next(p, cfg) {
		out = append(out, p)
	}

	return out
}

// Contains reports whether d falls inside p.
func (p Period) Contains(d calendar.Date) bool {
	return d.Between(p.Start, p.End)
}

// Len returns the number of days in p.
func (p Period) Len() int {
	return p.Start.DaysUntil(p.End) + 1
}

// Days returns every day of p.
func (p Period) Days() []calendar.Date {
	return calendar.Range(p.Start, p.End)
}

// Bounds returns midnight of the first day and the last instant of the final day in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	return p.Start.In(loc), p.End.EndOfDay(loc)
}

// Relation classifies p against today.
type Relation int

const (
	Past Relation = iota - 1
	Current
	Future
)

func (p Period) RelationTo(today calendar.Date) Relation {
	switch {
	case p.End.Before(today):
		return Past
	case p.Start.After(today):
		return Future
	}

	return Current
}
