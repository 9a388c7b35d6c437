package obligation

import (
	"slices"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
)

// Occurrence is one dated instance of an obligation.
type Occurrence struct {
	Obligation
	Date               calendar.Date `json:"occurrenceDate"`
	IsPaid             bool          `json:"isPaid"`
	CurrentInstallment int           `json:"currentInstallment,omitempty"`
}

// Expander turns obligation templates into occurrences. Monthly and installment obligations
// advance one billing cycle at a time, so it needs the cycle configuration.
type Expander struct {
	Cycle cycle.Config
}

func NewExpander(cfg cycle.Config) Expander {
	return Expander{Cycle: cfg}
}

// InRange returns the occurrences of all obligations that fall in [start, end], in input order
// and chronologically within each obligation.
func (e Expander) InRange(obligations []*Obligation, start, end calendar.Date) []Occurrence {
	var out []Occurrence

	for _, o := range obligations {
		out = append(out, e.Expand(o, start, end)...)
	}

	return out
}

// Expand returns the occurrences of o that fall in [start, end].
func (e Expander) Expand(o *Obligation, start, end calendar.Date) []Occurrence {
	if end.Before(start) || o.StartDate.After(end) {
		return nil
	}

	switch {
	case o.Recurrence == RecurrenceMonthly:
		return e.monthly(o, start, end)
	case o.Recurrence == RecurrenceInstallments && !o.MissingInstallmentCount():
		return e.installments(o, start, end)
	default:
		return single(o, start, end)
	}
}

func single(o *Obligation, start, end calendar.Date) []Occurrence {
	if !o.StartDate.Between(start, end) || o.ExcludedDates.Has(o.StartDate) {
		return nil
	}

	n := 0
	if o.Recurrence == RecurrenceInstallments {
		n = 1
	}

	return []Occurrence{newOccurrence(o, o.StartDate, n)}
}

func (e Expander) monthly(o *Obligation, start, end calendar.Date) []Occurrence {
	first := cycle.Containing(o.StartDate, e.Cycle)

	p := first
	if first.End.Before(start) {
		p = cycle.Containing(start, e.Cycle)
	}

	var out []Occurrence

	for ; !p.Start.After(end); p = cycle.Next(p, e.Cycle) {
		date := o.StartDate
		if p != first {
			date = anchor(p, o.StartDate.Day)
		}

		if date.Between(start, end) && !o.ExcludedDates.Has(date) {
			out = append(out, newOccurrence(o, date, 0))
		}
	}

	return out
}

func (e Expander) installments(o *Obligation, start, end calendar.Date) []Occurrence {
	var out []Occurrence

	p := cycle.Containing(o.StartDate, e.Cycle)

	for n := 1; n <= *o.Installments && !p.Start.After(end); n++ {
		date := o.StartDate
		if n > 1 {
			date = anchor(p, o.StartDate.Day)
		}

		if date.Between(start, end) && !o.ExcludedDates.Has(date) {
			out = append(out, newOccurrence(o, date, n))
		}

		p = cycle.Next(p, e.Cycle)
	}

	return out
}

// anchor re-places day-of-month inside p: the first month-clamped candidate inside the cycle,
// falling back to the cycle start when a short month leaves no candidate.
func anchor(p cycle.Period, day int) calendar.Date {
	for i := range 2 {
		y, m := p.Start.ShiftMonth(i)
		if d := calendar.Clamp(y, m, day); p.Contains(d) {
			return d
		}
	}

	return p.Start
}

func newOccurrence(o *Obligation, date calendar.Date, installment int) Occurrence {
	return Occurrence{
		Obligation:         *o.Clone(),
		Date:               date,
		IsPaid:             o.PaidDates.Has(date),
		CurrentInstallment: installment,
	}
}

// SortForDisplay orders occurrences newest first; same-day occurrences keep their order.
func SortForDisplay(occs []Occurrence) []Occurrence {
	out := slices.Clone(occs)
	slices.SortStableFunc(out, func(a, b Occurrence) int {
		return b.Date.Compare(a.Date)
	})

	return out
}

// Warnings lists the obligations whose data the expander had to interpret defensively.
func Warnings(obligations []*Obligation) []string {
	var out []string

	for _, o := range obligations {
		if o.MissingInstallmentCount() {
			out = append(out, "obligation "+o.ID.String()+" ("+o.Title+") has no installment count; treated as a single charge")
		}
	}

	return out
}
