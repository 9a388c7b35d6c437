package goal

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
)

// Settings is the single process-wide configuration of the goal and savings engines.
type Settings struct {
	StartDayOfMonth    int                               `json:"startDayOfMonth"`
	EndDayOfMonth      *int                              `json:"endDayOfMonth,omitempty"`
	DaysOff            calendar.DateSet                  `json:"daysOff"`
	DailySavingTarget  decimal.Decimal                   `json:"dailySavingTarget"`
	SavingsDates       calendar.DateSet                  `json:"savingsDates"`
	SavingsAdjustments map[calendar.Date]decimal.Decimal `json:"savingsAdjustments"`
	SavingsWithdrawals map[calendar.Date]decimal.Decimal `json:"savingsWithdrawals"`
}

func DefaultSettings() Settings {
	return Settings{StartDayOfMonth: 1}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := s

	if s.EndDayOfMonth != nil {
		c.EndDayOfMonth = new(*s.EndDayOfMonth)
	}

	c.DaysOff = calendar.NewDateSet(s.DaysOff...)
	c.SavingsDates = calendar.NewDateSet(s.SavingsDates...)
	c.SavingsAdjustments = maps.Clone(s.SavingsAdjustments)
	c.SavingsWithdrawals = maps.Clone(s.SavingsWithdrawals)

	return c
}

func (s Settings) CycleConfig() cycle.Config {
	return cycle.Config{StartDay: s.StartDayOfMonth, EndDay: s.EndDayOfMonth}
}

func (s Settings) IsDayOff(d calendar.Date) bool {
	return s.DaysOff.Has(d)
}

// ToggleDayOff returns a copy of s with d marked as a day off, or as a work day if it was off.
func ToggleDayOff(s Settings, d calendar.Date) Settings {
	c := s.Clone()
	c.DaysOff = s.DaysOff.Toggle(d)

	return c
}

// WorkDays counts the days that are not days off.
func (s Settings) WorkDays(days []calendar.Date) int {
	n := 0

	for _, d := range days {
		if !s.IsDayOff(d) {
			n++
		}
	}

	return n
}
