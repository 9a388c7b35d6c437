// Package goal computes how much still has to be earned each day to reach the cycle goal.
//
// The cycle goal is what the cycle's obligations cost net of recurring income. Each day the
// remaining amount is spread over the remaining work days. Income earned today settles today: the
// day is judged against the target it started with, and the displayed target moves on to
// tomorrow's figure.
package goal

import (
	"github.com/shopspring/decimal"
)

// State classifies a day. The first three apply to the current cycle's today; Forecast and Closed
// describe other cycles.
type State string

const (
	NotWorkedToday        State = "NOT_WORKED_TODAY"
	WorkedTodayHitGoal    State = "WORKED_TODAY_HIT_GOAL"
	WorkedTodayMissedGoal State = "WORKED_TODAY_MISSED_GOAL"
	Forecast              State = "FORECAST"
	Closed                State = "CLOSED"
)

type Inputs struct {
	RemainingAmount   decimal.Decimal
	IncomeEarnedToday decimal.Decimal
	FutureWorkDays    int
	IsTodayAWorkDay   bool
}

type Result struct {
	Target           decimal.Decimal `json:"target"`
	State            State           `json:"state"`
	Days             int             `json:"days"`
	StartOfDayTarget decimal.Decimal `json:"startOfDayTarget"`
}

// Compute applies the same-day recalculation rule. Targets are rounded to cents so that earning
// exactly the displayed target counts as a hit.
func Compute(in Inputs) Result {
	remaining := decimal.Max(in.RemainingAmount, decimal.Zero)
	earned := in.IncomeEarnedToday
	future := max(in.FutureWorkDays, 0)

	baselineRemaining := remaining.Add(earned)

	baselineDays := future
	if in.IsTodayAWorkDay {
		baselineDays++
	}

	startOfDay := perDay(baselineRemaining, baselineDays)

	if !earned.IsPositive() {
		return Result{
			Target:           startOfDay,
			State:            NotWorkedToday,
			Days:             baselineDays,
			StartOfDayTarget: startOfDay,
		}
	}

	state := WorkedTodayMissedGoal
	if earned.GreaterThanOrEqual(startOfDay) {
		state = WorkedTodayHitGoal
	}

	target := remaining.Round(2)
	if future > 0 {
		target = perDay(remaining, future)
	}

	return Result{
		Target:           target,
		State:            state,
		Days:             future,
		StartOfDayTarget: startOfDay,
	}
}

func perDay(amount decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}

	return amount.Div(decimal.NewFromInt(int64(days))).Round(2)
}
