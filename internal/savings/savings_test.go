package savings_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/savings"
)

func day(s string) calendar.Date { return calendar.MustParse(s) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProject(t *testing.T) {
	s := goal.DefaultSettings()
	s.DailySavingTarget = dec("10")

	for _, d := range []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-02-10", "2024-02-11"} {
		s = savings.ToggleDay(s, day(d))
	}

	s = savings.SetWithdrawal(s, day("2024-03-01"), dec("20"))

	got := savings.Project(s, day("2024-12-30"))
	assert.True(t, dec("30").Equal(got.ReserveBalance), "reserve %s", got.ReserveBalance)
	assert.Equal(t, 5, got.MarkedDays)
	assert.Equal(t, 2, got.RemainingDays)
	assert.True(t, dec("50").Equal(got.ProjectedYearEnd), "projected %s", got.ProjectedYearEnd)
}

func TestProject_WithAdjustments(t *testing.T) {
	s := goal.DefaultSettings()
	s.DailySavingTarget = dec("12.50")
	s = savings.SetAdjustment(s, day("2024-05-01"), dec("100"))
	s = savings.SetAdjustment(s, day("2024-05-02"), dec("5.25"))

	got := savings.Project(s, day("2024-01-01"))
	assert.True(t, dec("105.25").Equal(got.ReserveBalance))
	assert.Equal(t, 366, got.RemainingDays)
	assert.True(t, dec("4680.25").Equal(got.ProjectedYearEnd), "projected %s", got.ProjectedYearEnd)
}

func TestRemainingDays(t *testing.T) {
	assert.Equal(t, 1, savings.RemainingDays(day("2023-12-31")))
	assert.Equal(t, 365, savings.RemainingDays(day("2023-01-01")))
}

func TestToggles_AreReversible(t *testing.T) {
	s := goal.DefaultSettings()

	marked := savings.ToggleDay(s, day("2024-04-01"))
	require.True(t, marked.SavingsDates.Has(day("2024-04-01")))
	assert.Empty(t, savings.ToggleDay(marked, day("2024-04-01")).SavingsDates)

	adjusted := savings.SetAdjustment(s, day("2024-04-01"), dec("30"))
	assert.Len(t, adjusted.SavingsAdjustments, 1)
	assert.Nil(t, s.SavingsAdjustments, "input must not be mutated")

	cleared := savings.SetAdjustment(adjusted, day("2024-04-01"), dec("0.00"))
	assert.NotContains(t, cleared.SavingsAdjustments, day("2024-04-01"))
	assert.Len(t, adjusted.SavingsAdjustments, 1)

	withdrawn := savings.SetWithdrawal(s, day("2024-04-02"), dec("15"))
	withdrawn = savings.SetWithdrawal(withdrawn, day("2024-04-03"), dec("5"))
	withdrawn = savings.SetWithdrawal(withdrawn, day("2024-04-02"), decimal.Zero)
	assert.Equal(t, []calendar.Date{day("2024-04-03")}, keys(withdrawn.SavingsWithdrawals))
}

func keys(m map[calendar.Date]decimal.Decimal) []calendar.Date {
	var out []calendar.Date
	for k := range m {
		out = append(out, k)
	}

	return out
}
