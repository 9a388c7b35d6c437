package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/savings"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
)

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginRight(1)
	labelStyle = lipgloss.NewStyle().Faint(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DashboardModel shows today's goal, the cycle summary and the savings projection. The cycle
// offset moves the goal panel to past or future cycles.
type DashboardModel struct {
	CommonModel
	dashboard *dashboard.Service
	settings  *settings.Service
	now       func() time.Time

	offset  int
	report  goal.Report
	summary dashboard.Summary
	savings savings.Projection
	dayOff  bool
	saved   bool
	status  string
}

func NewDashboardModel(dash *dashboard.Service, settingsSvc *settings.Service, now func() time.Time) DashboardModel {
	return DashboardModel{
		dashboard: dash,
		settings:  settingsSvc,
		now:       now,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | ←/→: cycle | o: toggle day off | s: toggle savings day | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.report = msg.report
		m.summary = msg.summary
		m.savings = msg.savings
		m.dayOff = msg.settings.IsDayOff(msg.today)
		m.saved = msg.settings.SavingsDates.Has(msg.today)

		return m, nil

	case settingsSavedMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "left", "h":
			m.offset--
			return m, m.loadCmd()
		case "right", "l":
			m.offset++
			return m, m.loadCmd()
		case "o":
			return m, m.toggleCmd(m.settings.ToggleDayOff)
		case "s":
			return m, m.toggleCmd(m.settings.ToggleSavingsDay)
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.goalView()),
		panelStyle.Render(m.summaryView()),
		panelStyle.Render(m.savingsView()),
	)

	content := panels
	if len(m.report.Warnings) > 0 {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		for _, w := range m.report.Warnings {
			content += "\n" + warn.Render("! "+w)
		}
	}

	if m.status != "" {
		content = labelStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) goalView() string {
	r := m.report

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", activeStyle(fmt.Sprintf("Cycle %s → %s", r.Period.Start, r.Period.End)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("State:"), stateLabel(r.State))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Target:"), lipgloss.NewStyle().Bold(true).Render(FormatAmount(r.Target)))
	row(&b, "Cycle goal", FormatAmount(r.CycleGoal))
	row(&b, "Balance", FormatAmount(r.Balance))
	row(&b, "Remaining", FormatAmount(r.Remaining))
	row(&b, "Earned today", FormatAmount(r.IncomeToday))
	row(&b, "Work days left", fmt.Sprintf("%d / %d", r.FutureWorkDays, r.TotalWorkDays))
	fmt.Fprintf(&b, "\n%s", r.HelperText)

	if m.offset == 0 {
		marks := []string{}
		if m.dayOff {
			marks = append(marks, "day off")
		}

		if m.saved {
			marks = append(marks, "saved today")
		}

		if len(marks) > 0 {
			fmt.Fprintf(&b, "\n%s", labelStyle.Render("Today: "+strings.Join(marks, ", ")))
		}
	}

	return b.String()
}

func (m DashboardModel) summaryView() string {
	s := m.summary

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", activeStyle("Summary"))
	row(&b, "Income", FormatAmount(s.Income))
	row(&b, "Expense", FormatAmount(s.Expense))

	balance := FormatAmount(s.Balance)
	if s.Balance.IsNegative() {
		balance = badStyle.Render(balance)
	}

	row(&b, "Balance", balance)
	row(&b, "Planned", FormatAmount(s.Planned))
	row(&b, "Pending", FormatAmount(s.Pending))
	row(&b, "Fuel", FormatAmount(s.Fuel))
	row(&b, "This week", FormatAmount(s.WeekIncome))

	for _, u := range s.Cards {
		used := FormatAmount(u.Used)

		switch {
		case u.Exceeded:
			used = badStyle.Render(used + " over limit")
		case u.Available != nil:
			used += labelStyle.Render(" (" + FormatAmount(*u.Available) + " left)")
		}

		row(&b, u.Card.Name, used)
	}

	return b.String()
}

func (m DashboardModel) savingsView() string {
	p := m.savings

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", activeStyle("Savings"))
	row(&b, "Reserve", goodStyle.Render(FormatAmount(p.ReserveBalance)))
	row(&b, "Year end", FormatAmount(p.ProjectedYearEnd))
	row(&b, "Marked days", fmt.Sprintf("%d", p.MarkedDays))
	row(&b, "Adjustments", FormatAmount(p.Adjustments))
	row(&b, "Withdrawals", FormatAmount(p.Withdrawals))
	row(&b, "Days left", fmt.Sprintf("%d", p.RemainingDays))

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", label)), value)
}

func stateLabel(s goal.State) string {
	switch s {
	case goal.WorkedTodayHitGoal:
		return goodStyle.Render("goal hit")
	case goal.WorkedTodayMissedGoal:
		return badStyle.Render("below target")
	case goal.NotWorkedToday:
		return "not worked yet"
	case goal.Forecast:
		return "forecast"
	case goal.Closed:
		return "closed"
	}

	return string(s)
}

// Messages

type dashboardLoadedMsg struct {
	today    calendar.Date
	report   goal.Report
	summary  dashboard.Summary
	savings  savings.Projection
	settings goal.Settings
}

func (m DashboardModel) loadCmd() tea.Cmd {
	dash := m.dashboard
	today := calendar.Today(m.now())
	offset := m.offset

	return func() tea.Msg {
		ref := today
		if offset != 0 {
			p := dash.Cycle(today)
			for ; offset > 0; offset-- {
				p = dash.Cycle(p.End.AddDays(1))
			}

			for ; offset < 0; offset++ {
				p = dash.Cycle(p.Start.AddDays(-1))
			}

			ref = p.Start
		}

		report := dash.Goal(today)
		if ref != today {
			report = dash.GoalFor(ref, today)
		}

		return dashboardLoadedMsg{
			today:    today,
			report:   report,
			summary:  dash.Summary(ref),
			savings:  dash.Savings(today),
			settings: dash.Settings(),
		}
	}
}

type settingsSavedMsg struct {
	err error
}

func (m DashboardModel) toggleCmd(toggle func(ctx context.Context, d calendar.Date) (goal.Settings, error)) tea.Cmd {
	today := calendar.Today(m.now())

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := toggle(ctx, today)

		return settingsSavedMsg{err: err}
	}
}
