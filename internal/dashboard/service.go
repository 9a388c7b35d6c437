// Package dashboard assembles the read-side views (cycle, occurrences, summary, goal, savings) from
// one consistent snapshot of the stored collections.
package dashboard

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/ledger"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/savings"
	"github.com/MrJamesThe3rd/metadia/internal/state"
)

type Source interface {
	Snapshot() state.Snapshot
}

type Service struct {
	src  Source
	opts ledger.Options
}

func NewService(src Source, opts ledger.Options) *Service {
	return &Service{src: src, opts: opts}
}

// Cycle returns the billing cycle containing d.
func (s *Service) Cycle(d calendar.Date) cycle.Period {
	return goal.NewEngine(s.src.Snapshot().Settings).Period(d)
}

type Occurrences struct {
	Start       calendar.Date           `json:"start"`
	End         calendar.Date           `json:"end"`
	Occurrences []obligation.Occurrence `json:"occurrences"`
	Warnings    []string                `json:"warnings,omitempty"`
}

// Occurrences expands every obligation into [start, end], newest first.
func (s *Service) Occurrences(start, end calendar.Date) Occurrences {
	snap := s.src.Snapshot()
	exp := obligation.NewExpander(snap.Settings.CycleConfig())

	return Occurrences{
		Start:       start,
		End:         end,
		Occurrences: obligation.SortForDisplay(exp.InRange(snap.Obligations, start, end)),
		Warnings:    warnings(snap.Obligations),
	}
}

type Summary struct {
	ledger.Summary
	Period     cycle.Period       `json:"period"`
	Cards      []ledger.CardUsage `json:"cards"`
	WeekIncome decimal.Decimal    `json:"weekIncome"`
}

// Summary aggregates the cycle containing d.
func (s *Service) Summary(d calendar.Date) Summary {
	snap := s.src.Snapshot()
	p := cycle.Containing(d, snap.Settings.CycleConfig())
	occs := obligation.NewExpander(snap.Settings.CycleConfig()).InRange(snap.Obligations, p.Start, p.End)

	sum := ledger.Aggregate(snap.Transactions, occs, p.Start, p.End, s.opts)

	return Summary{
		Summary:    sum,
		Period:     p,
		Cards:      ledger.Usage(snap.Cards, sum),
		WeekIncome: ledger.WeekIncome(snap.Transactions, d),
	}
}

// Goal reports the daily goal of the cycle containing today.
func (s *Service) Goal(today calendar.Date) goal.Report {
	snap := s.src.Snapshot()

	r := goal.NewEngine(snap.Settings).Daily(snap.Transactions, snap.Obligations, today)
	logWarnings(r.Warnings)

	return r
}

// GoalFor reports the goal of the cycle containing ref, judged as of today.
func (s *Service) GoalFor(ref, today calendar.Date) goal.Report {
	snap := s.src.Snapshot()
	eng := goal.NewEngine(snap.Settings)

	return eng.ForPeriod(snap.Transactions, snap.Obligations, eng.Period(ref), today)
}

func (s *Service) History(today calendar.Date) []goal.DayRecord {
	snap := s.src.Snapshot()

	return goal.NewEngine(snap.Settings).History(snap.Transactions, snap.Obligations, today)
}

func (s *Service) Savings(today calendar.Date) savings.Projection {
	return savings.Project(s.src.Snapshot().Settings, today)
}

// Settings returns the current goal settings.
func (s *Service) Settings() goal.Settings {
	return s.src.Snapshot().Settings
}

func warnings(obligations []*obligation.Obligation) []string {
	out := obligation.Warnings(obligations)
	logWarnings(out)

	return out
}

func logWarnings(ws []string) {
	for _, w := range ws {
		slog.Warn("obligation data issue", "warning", w)
	}
}
