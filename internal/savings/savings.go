// Package savings projects the yearly emergency reserve built from days the flat daily saving
// target was met.
package savings

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
)

type Projection struct {
	ReserveBalance   decimal.Decimal `json:"reserveBalance"`
	ProjectedYearEnd decimal.Decimal `json:"projectedYearEnd"`
	MarkedDays       int             `json:"markedDays"`
	Adjustments      decimal.Decimal `json:"adjustments"`
	Withdrawals      decimal.Decimal `json:"withdrawals"`
	RemainingDays    int             `json:"remainingDays"`
}

// Project computes the reserve and assumes the daily target is met on every remaining day of
// today's year, today included.
func Project(s goal.Settings, today calendar.Date) Projection {
	p := Projection{
		MarkedDays:    len(s.SavingsDates),
		Adjustments:   sum(s.SavingsAdjustments),
		Withdrawals:   sum(s.SavingsWithdrawals),
		RemainingDays: RemainingDays(today),
	}

	p.ReserveBalance = s.DailySavingTarget.Mul(decimal.NewFromInt(int64(p.MarkedDays))).
		Add(p.Adjustments).
		Sub(p.Withdrawals)
	p.ProjectedYearEnd = p.ReserveBalance.Add(s.DailySavingTarget.Mul(decimal.NewFromInt(int64(p.RemainingDays))))

	return p
}

// RemainingDays counts the days from today to December 31 inclusive.
func RemainingDays(today calendar.Date) int {
	end := calendar.New(today.Year, 12, 31)
	return max(today.DaysUntil(end)+1, 0)
}

func sum(m map[calendar.Date]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}

	return total
}

// ToggleDay marks d as a day the saving target was met, or unmarks it.
func ToggleDay(s goal.Settings, d calendar.Date) goal.Settings {
	c := s.Clone()
	c.SavingsDates = s.SavingsDates.Toggle(d)

	return c
}

// SetAdjustment records an extra amount saved on d. A zero amount removes the entry.
func SetAdjustment(s goal.Settings, d calendar.Date, amount decimal.Decimal) goal.Settings {
	c := s.Clone()
	c.SavingsAdjustments = set(s.SavingsAdjustments, d, amount)

	return c
}

// SetWithdrawal records an amount taken out of the reserve on d. A zero amount removes the entry.
func SetWithdrawal(s goal.Settings, d calendar.Date, amount decimal.Decimal) goal.Settings {
	c := s.Clone()
	c.SavingsWithdrawals = set(s.SavingsWithdrawals, d, amount)

	return c
}

func set(m map[calendar.Date]decimal.Decimal, d calendar.Date, amount decimal.Decimal) map[calendar.Date]decimal.Decimal {
	out := maps.Clone(m)

	if amount.IsZero() {
		delete(out, d)

		if len(out) == 0 {
			return nil
		}

		return out
	}

	if out == nil {
		out = make(map[calendar.Date]decimal.Decimal)
	}

	out[d] = amount

	return out
}
