package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/cycle"
	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateCreate
)

// BillsModel lists the obligation occurrences of one billing cycle.
type BillsModel struct {
	CommonModel
	dashboard   *dashboard.Service
	obligations *obligation.Service
	now         func() time.Time

	state    billsState
	period   cycle.Period
	table    table.Model
	occs     []obligation.Occurrence
	warnings []string
	form     *huh.Form
	status   string

	// Form bindings
	formTitle        string
	formCategory     string
	formAmount       string
	formType         transaction.Type
	formRecurrence   obligation.Recurrence
	formStartDate    string
	formInstallments string
}

func NewBillsModel(dash *dashboard.Service, oblSvc *obligation.Service, now func() time.Time) BillsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Paid", Width: 6},
		{Title: "Amount", Width: 12},
		{Title: "Title", Width: 30},
		{Title: "Category", Width: 16},
		{Title: "Installment", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BillsModel{
		dashboard:   dash,
		obligations: oblSvc,
		now:         now,
		period:      dash.Cycle(calendar.Today(now())),
		table:       t,
	}
}

func (m BillsModel) Title() string { return "Bills" }

func (m BillsModel) ShortHelp() string {
	if m.state == billsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | ←/→: cycle | p: toggle paid | x: skip occurrence | a: add bill | r: refresh"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillsMsg:
		m.occs = msg.occs.Occurrences
		m.warnings = msg.occs.Warnings
		m.refreshTable()

		return m, nil

	case billsSaveMsg:
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == billsStateCreate {
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "left", "h":
			m.period = m.dashboard.Cycle(m.period.Start.AddDays(-1))
			return m, m.loadCmd()
		case "right", "l":
			m.period = m.dashboard.Cycle(m.period.End.AddDays(1))
			return m, m.loadCmd()
		case "p":
			return m, m.toggleCmd(m.obligations.TogglePaid)
		case "x":
			return m, m.toggleCmd(m.obligations.ToggleExcluded)
		case "a":
			return m.enterCreateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formTitle = ""
	m.formCategory = ""
	m.formAmount = ""
	m.formType = transaction.TypeExpense
	m.formRecurrence = obligation.RecurrenceMonthly
	m.formStartDate = m.period.Start.String()
	m.formInstallments = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.formTitle).
				Validate(validateNotBlank("title")),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory).
				Validate(validateNotBlank("category")),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&m.formType),
		),
		huh.NewGroup(
			huh.NewSelect[obligation.Recurrence]().
				Key("recurrence").
				Title("Recurrence").
				Options(
					huh.NewOption("Monthly", obligation.RecurrenceMonthly),
					huh.NewOption("Installments", obligation.RecurrenceInstallments),
					huh.NewOption("Single", obligation.RecurrenceSingle),
				).
				Value(&m.formRecurrence),

			huh.NewInput().
				Key("start_date").
				Title("First due date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formStartDate).
				Validate(validateDate),

			huh.NewInput().
				Key("installments").
				Title("Installments (installment plans only)").
				Value(&m.formInstallments).
				Validate(m.validateInstallments),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = billsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m *BillsModel) validateInstallments(s string) error {
	if m.formRecurrence != obligation.RecurrenceInstallments && strings.TrimSpace(s) == "" {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("installments must be a whole number of at least 1")
	}

	return nil
}

func (m BillsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m BillsModel) View() string {
	header := fmt.Sprintf("Cycle %s → %s", activeStyle(m.period.Start.String()), activeStyle(m.period.End.String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	for _, w := range m.warnings {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("! "+w)
	}

	if m.state == billsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("New Bill\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *BillsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.occs))

	for _, occ := range m.occs {
		paid := ""
		if occ.IsPaid {
			paid = "✓"
		}

		amount := FormatAmount(occ.Amount)
		if occ.Type == transaction.TypeIncome {
			amount = "+" + amount
		}

		installment := ""
		if occ.CurrentInstallment > 0 && occ.Installments != nil {
			installment = fmt.Sprintf("%d/%d", occ.CurrentInstallment, *occ.Installments)
		}

		rows = append(rows, table.Row{
			occ.Date.String(),
			paid,
			amount,
			occ.Title,
			occ.Category,
			installment,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadBillsMsg struct {
	occs dashboard.Occurrences
}

func (m BillsModel) loadCmd() tea.Cmd {
	dash := m.dashboard
	p := m.period

	return func() tea.Msg {
		return loadBillsMsg{occs: dash.Occurrences(p.Start, p.End)}
	}
}

type billsSaveMsg struct {
	err error
}

type toggleFunc func(ctx context.Context, id uuid.UUID, date calendar.Date) (*obligation.Obligation, error)

func (m BillsModel) toggleCmd(toggle toggleFunc) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.occs) {
		return nil
	}

	occ := m.occs[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := toggle(ctx, occ.ID, occ.Date)

		return billsSaveMsg{err: err}
	}
}

func (m BillsModel) createCmd() tea.Cmd {
	// The form bindings point at the copy that built the form, so read the values back from it.
	params := obligation.CreateParams{
		Title:    strings.TrimSpace(m.form.GetString("title")),
		Category: strings.TrimSpace(m.form.GetString("category")),
	}
	params.Type, _ = m.form.Get("type").(transaction.Type)
	params.Recurrence, _ = m.form.Get("recurrence").(obligation.Recurrence)
	params.Amount, _ = decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))
	params.StartDate, _ = calendar.Parse(strings.TrimSpace(m.form.GetString("start_date")))

	if n, err := strconv.Atoi(strings.TrimSpace(m.form.GetString("installments"))); err == nil && n > 0 {
		params.Installments = new(n)
	}

	oblSvc := m.obligations

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := oblSvc.Create(ctx, params)

		return billsSaveMsg{err: err}
	}
}
