package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func goalCmd(a *app) *cobra.Command {
	var cycleRef string

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show today's income target",
		Long: `Show how much still has to be earned today to reach the goal of the current cycle.

With --cycle the report covers the cycle containing that day instead: a future cycle is
forecast over its work days and a past cycle is shown as closed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			r := a.dashboard.Goal(today)

			if cycleRef != "" {
				ref, err := calendar.Parse(cycleRef)
				if err != nil {
					return fmt.Errorf("invalid --cycle: %w", err)
				}

				r = a.dashboard.GoalFor(ref, today)
			}

			return a.print(cmd.OutOrStdout(), r, func(w io.Writer) { writeGoal(w, r) })
		},
	}

	cmd.Flags().StringVar(&cycleRef, "cycle", "", "any day of the cycle to report on (YYYY-MM-DD)")

	return cmd
}

func writeGoal(w io.Writer, r goal.Report) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Cycle %s → %s", r.Period.Start, r.Period.End)))
	fmt.Fprintf(w, "Target:          %s\n", r.Target.StringFixed(2))
	fmt.Fprintf(w, "State:           %s\n", r.State)
	fmt.Fprintf(w, "Cycle goal:      %s\n", r.CycleGoal.StringFixed(2))
	fmt.Fprintf(w, "Balance:         %s\n", r.Balance.StringFixed(2))
	fmt.Fprintf(w, "Remaining:       %s\n", r.Remaining.StringFixed(2))
	fmt.Fprintf(w, "Earned today:    %s\n", r.IncomeToday.StringFixed(2))
	fmt.Fprintf(w, "Work days left:  %d of %d\n", r.FutureWorkDays, r.TotalWorkDays)
	fmt.Fprintln(w, r.HelperText)

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func historyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Replay the daily target for every day of the current cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			days := a.dashboard.History(today)

			return a.print(cmd.OutOrStdout(), days, func(w io.Writer) {
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("DATE", "OFF", "INCOME", "TARGET", "STATE")

				for _, d := range days {
					off := ""
					if d.Off {
						off = "yes"
					}

					t.Row(d.Date.String(), off, d.Income.StringFixed(2), d.StartOfDayTarget.StringFixed(2), string(d.State))
				}

				fmt.Fprintln(w, t.String())
			})
		},
	}
}

func cycleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle",
		Short: "Show the billing cycle containing the reference day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.today()
			if err != nil {
				return err
			}

			p := a.dashboard.Cycle(day)

			return a.print(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "%s → %s (%d days)\n", p.Start, p.End, p.Len())
			})
		},
	}
}

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Total income, expenses and card usage of the cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.today()
			if err != nil {
				return err
			}

			s := a.dashboard.Summary(day)

			return a.print(cmd.OutOrStdout(), s, func(w io.Writer) {
				fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Cycle %s → %s", s.Period.Start, s.Period.End)))
				fmt.Fprintf(w, "Income:     %s\n", s.Income.StringFixed(2))
				fmt.Fprintf(w, "Expense:    %s\n", s.Expense.StringFixed(2))
				fmt.Fprintf(w, "Balance:    %s\n", s.Balance.StringFixed(2))
				fmt.Fprintf(w, "Planned:    %s\n", s.Planned.StringFixed(2))
				fmt.Fprintf(w, "Pending:    %s\n", s.Pending.StringFixed(2))
				fmt.Fprintf(w, "Fuel:       %s\n", s.Fuel.StringFixed(2))
				fmt.Fprintf(w, "This week:  %s\n", s.WeekIncome.StringFixed(2))

				if len(s.Cards) == 0 {
					return
				}

				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("CARD", "USED", "AVAILABLE")

				for _, u := range s.Cards {
					available := "unlimited"
					if u.Available != nil {
						available = u.Available.StringFixed(2)
					}

					if u.Exceeded {
						available += " (exceeded)"
					}

					t.Row(u.Card.Name, u.Used.StringFixed(2), available)
				}

				fmt.Fprintln(w, t.String())
			})
		},
	}
}

func savingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "Show the emergency reserve and its year-end projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			p := a.dashboard.Savings(today)

			return a.print(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "Reserve:           %s\n", p.ReserveBalance.StringFixed(2))
				fmt.Fprintf(w, "Projected Dec 31:  %s\n", p.ProjectedYearEnd.StringFixed(2))
				fmt.Fprintf(w, "Days saved:        %d\n", p.MarkedDays)
				fmt.Fprintf(w, "Adjustments:       %s\n", p.Adjustments.StringFixed(2))
				fmt.Fprintf(w, "Withdrawals:       %s\n", p.Withdrawals.StringFixed(2))
				fmt.Fprintf(w, "Days left in year: %d\n", p.RemainingDays)
			})
		},
	}
}
