package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateEditing
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) Title() string {
	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Type))

	amount := FormatAmount(i.tx.Amount)
	if i.tx.Type == transaction.TypeExpense {
		amount = "-" + amount
	}

	return fmt.Sprintf("%s  %10s  %s  %s", FormatDate(i.tx.Date), amount, kind, i.tx.Description)
}

func (i txItem) Description() string {
	if i.tx.RawDescription != "" && i.tx.RawDescription != i.tx.Description {
		return fmt.Sprintf("Raw: %s", i.tx.RawDescription)
	}

	return ""
}

func (i txItem) FilterValue() string {
	return i.tx.Description + " " + i.tx.RawDescription
}

type TransactionsModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service

	state           txState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	txs             []*transaction.Transaction
	selectedTx      *transaction.Transaction

	filter  transaction.ListFilter
	loading bool
	status  string

	// Form field bindings
	formDesc   string
	formAmount string
	formType   transaction.Type
	formDate   string
}

func NewTransactionsModel(txSvc *transaction.Service, matchSvc *matching.Service, cycleOf CycleFunc, now func() time.Time) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService:       txSvc,
		matchingService: matchSvc,
		timeframePicker: NewTimeframePicker(cycleOf, now),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Manage Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | Enter: edit | n: new | x: delete | /: filter"
	case txStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = transaction.ListFilter{}
		if !msg.All {
			m.filter.StartDate = new(msg.Start)
			m.filter.EndDate = new(msg.End)
		}

		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshListItems()

		m.status = ""
		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case saveTxResultMsg:
		m.state = txStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			m.state = txStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "enter":
			selected, ok := m.list.SelectedItem().(txItem)
			if !ok {
				return m, nil
			}

			return m.startEditing(selected.tx)
		case "n":
			return m.startEditing(nil)
		case "x":
			selected, ok := m.list.SelectedItem().(txItem)
			if !ok {
				return m, nil
			}

			return m, m.deleteTxCmd(selected.tx)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// startEditing opens the form for tx, or for a new transaction when tx is nil.
func (m TransactionsModel) startEditing(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.selectedTx = tx
	m.formType = transaction.TypeIncome
	m.formDate = calendar.FormatISO(time.Now())
	m.formAmount = ""
	m.formDesc = ""

	if tx != nil {
		m.formType = tx.Type
		m.formDate = FormatDate(tx.Date)
		m.formAmount = FormatAmount(tx.Amount)
		m.formDesc = tx.Description
	}

	if m.formDesc == "" && tx != nil && tx.RawDescription != "" {
		ctx, cancel := DbCtx()
		defer cancel()

		m.formDesc, _ = m.matchingService.Suggest(ctx, tx.RawDescription)
		if m.formDesc == "" {
			m.formDesc = tx.RawDescription
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Income", transaction.TypeIncome),
					huh.NewOption("Expense", transaction.TypeExpense),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(validateDate),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(validateNotBlank("description")),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("amount must be a number")
	}

	if !d.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := calendar.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}

	return nil
}

func validateNotBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.txInfoView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) txInfoView() string {
	text := "New transaction"
	if m.selectedTx != nil {
		text = fmt.Sprintf("Editing %s  |  Raw: %s", FormatDate(m.selectedTx.Date), m.selectedTx.RawDescription)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(text)
}

func (m *TransactionsModel) refreshListItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	txSvc := m.txService
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := txSvc.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

type saveTxResultMsg struct {
	status string
	err    error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	existing := m.selectedTx
	desc := strings.TrimSpace(m.form.GetString("description"))
	typ, _ := m.form.Get("type").(transaction.Type)
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.form.GetString("amount")))
	day, _ := calendar.Parse(strings.TrimSpace(m.form.GetString("date")))
	matchSvc := m.matchingService
	txSvc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		date := day.Noon(time.Local)

		if existing == nil {
			_, err := txSvc.Create(ctx, transaction.CreateParams{
				Amount:      amount,
				Type:        typ,
				Description: desc,
				Date:        date,
			})

			return saveTxResultMsg{status: "Created.", err: err}
		}

		if existing.RawDescription != "" && desc != existing.RawDescription {
			if err := matchSvc.Learn(ctx, existing.RawDescription, desc); err != nil {
				return saveTxResultMsg{err: err}
			}
		}

		tx := *existing
		tx.Description = desc
		tx.Type = typ
		tx.Amount = amount
		tx.Date = date

		return saveTxResultMsg{status: "Saved.", err: txSvc.Update(ctx, &tx)}
	}
}

func (m TransactionsModel) deleteTxCmd(tx *transaction.Transaction) tea.Cmd {
	txSvc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return saveTxResultMsg{status: "Deleted.", err: txSvc.Delete(ctx, tx.ID)}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
