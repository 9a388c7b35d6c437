package goal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

// Report is the goal view of one cycle as of a reference day.
type Report struct {
	Result
	HelperText     string          `json:"helperText"`
	Period         cycle.Period    `json:"period"`
	CycleGoal      decimal.Decimal `json:"cycleGoal"`
	Balance        decimal.Decimal `json:"balance"`
	Remaining      decimal.Decimal `json:"remaining"`
	IncomeToday    decimal.Decimal `json:"incomeToday"`
	FutureWorkDays int             `json:"futureWorkDays"`
	TotalWorkDays  int             `json:"totalWorkDays"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// Engine evaluates goals against one settings snapshot. It keeps no state between calls.
type Engine struct {
	settings Settings
	expander obligation.Expander
}

func NewEngine(settings Settings) Engine {
	return Engine{
		settings: settings,
		expander: obligation.NewExpander(settings.CycleConfig()),
	}
}

// Period returns the cycle containing d under the engine's settings.
func (e Engine) Period(d calendar.Date) cycle.Period {
	return cycle.Containing(d, e.settings.CycleConfig())
}

// CycleGoal is what the obligations falling in p cost net of recurring income, never negative.
func (e Engine) CycleGoal(obligations []*obligation.Obligation, p cycle.Period) decimal.Decimal {
	net := decimal.Zero

	for _, occ := range e.expander.InRange(obligations, p.Start, p.End) {
		switch occ.Type {
		case transaction.TypeExpense:
			net = net.Add(occ.Amount)
		case transaction.TypeIncome:
			net = net.Sub(occ.Amount)
		}
	}

	return decimal.Max(net, decimal.Zero)
}

// Daily reports the goal of the cycle containing today.
func (e Engine) Daily(txs []*transaction.Transaction, obligations []*obligation.Obligation, today calendar.Date) Report {
	return e.current(txs, obligations, e.Period(today), today)
}

// ForPeriod reports the goal of p. The current cycle gets the daily rule; a future cycle gets a
// flat forecast of its goal over its work days; a past cycle is closed with a zero target.
func (e Engine) ForPeriod(txs []*transaction.Transaction, obligations []*obligation.Obligation, p cycle.Period, today calendar.Date) Report {
	switch p.RelationTo(today) {
	case cycle.Past:
		r := Report{
			Result:        Result{State: Closed},
			Period:        p,
			CycleGoal:     e.CycleGoal(obligations, p),
			Balance:       balance(txs, p.Start, p.End),
			TotalWorkDays: e.settings.WorkDays(p.Days()),
		}
		r.Remaining = decimal.Max(r.CycleGoal.Sub(r.Balance), decimal.Zero)
		r.HelperText = HelperText(r)

		return r
	case cycle.Future:
		goal := e.CycleGoal(obligations, p)
		days := e.settings.WorkDays(p.Days())
		target := perDay(goal, days)

		r := Report{
			Result:         Result{Target: target, State: Forecast, Days: days, StartOfDayTarget: target},
			Period:         p,
			CycleGoal:      goal,
			Remaining:      goal,
			FutureWorkDays: days,
			TotalWorkDays:  days,
		}
		r.HelperText = HelperText(r)

		return r
	}

	return e.current(txs, obligations, p, today)
}

func (e Engine) current(txs []*transaction.Transaction, obligations []*obligation.Obligation, p cycle.Period, today calendar.Date) Report {
	r := e.dayReport(txs, p, today, e.CycleGoal(obligations, p))
	r.Warnings = obligation.Warnings(obligations)
	r.HelperText = HelperText(r)

	return r
}

func (e Engine) dayReport(txs []*transaction.Transaction, p cycle.Period, d calendar.Date, goal decimal.Decimal) Report {
	bal := balance(txs, p.Start, d)
	remaining := decimal.Max(goal.Sub(bal), decimal.Zero)
	incomeToday := income(txs, d)
	future := e.settings.WorkDays(calendar.Range(d.AddDays(1), p.End))

	res := Compute(Inputs{
		RemainingAmount:   remaining,
		IncomeEarnedToday: incomeToday,
		FutureWorkDays:    future,
		IsTodayAWorkDay:   !e.settings.IsDayOff(d),
	})

	return Report{
		Result:         res,
		Period:         p,
		CycleGoal:      goal,
		Balance:        bal,
		Remaining:      remaining,
		IncomeToday:    incomeToday,
		FutureWorkDays: future,
		TotalWorkDays:  e.settings.WorkDays(p.Days()),
	}
}

// DayRecord is the retrospective outcome of one cycle day.
type DayRecord struct {
	Date             calendar.Date   `json:"date"`
	Off              bool            `json:"off"`
	Income           decimal.Decimal `json:"income"`
	StartOfDayTarget decimal.Decimal `json:"startOfDayTarget"`
	State            State           `json:"state"`
}

// History replays the daily rule for every day of today's cycle up to and including today.
func (e Engine) History(txs []*transaction.Transaction, obligations []*obligation.Obligation, today calendar.Date) []DayRecord {
	p := e.Period(today)
	goal := e.CycleGoal(obligations, p)

	days := calendar.Range(p.Start, today)
	out := make([]DayRecord, 0, len(days))

	for _, d := range days {
		r := e.dayReport(txs, p, d, goal)
		out = append(out, DayRecord{
			Date:             d,
			Off:              e.settings.IsDayOff(d),
			Income:           r.IncomeToday,
			StartOfDayTarget: r.StartOfDayTarget,
			State:            r.State,
		})
	}

	return out
}

// balance is ad-hoc income minus ad-hoc expense dated within [start, end].
func balance(txs []*transaction.Transaction, start, end calendar.Date) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if !tx.Day().Between(start, end) {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			total = total.Add(tx.Amount)
		case transaction.TypeExpense:
			total = total.Sub(tx.Amount)
		}
	}

	return total
}

func income(txs []*transaction.Transaction, d calendar.Date) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if tx.Type == transaction.TypeIncome && tx.Day() == d {
			total = total.Add(tx.Amount)
		}
	}

	return total
}

// HelperText is the one-line explanation shown under the target.
func HelperText(r Report) string {
	switch {
	case r.State == Closed:
		return "This cycle is closed."
	case r.State == Forecast:
		if r.Days == 0 {
			return "No work days planned in this cycle."
		}

		return fmt.Sprintf("Forecast: %s per work day over %d work days.", r.Target.StringFixed(2), r.Days)
	case r.State == NotWorkedToday && r.Remaining.IsZero():
		return "Cycle goal reached. Anything earned now is extra."
	case r.State == NotWorkedToday && r.Days == 0:
		return "No work days left in this cycle."
	case r.State == NotWorkedToday:
		return fmt.Sprintf("Earn %s today to stay on track (%d work days left).", r.Target.StringFixed(2), r.Days)
	case r.State == WorkedTodayHitGoal:
		return fmt.Sprintf("Goal hit today! Tomorrow's target: %s.", r.Target.StringFixed(2))
	}

	return fmt.Sprintf("Below today's target of %s. Tomorrow's target: %s.",
		r.StartOfDayTarget.StringFixed(2), r.Target.StringFixed(2))
}
