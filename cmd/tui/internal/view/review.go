package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type reviewState int

const (
	reviewStateTimeframe reviewState = iota
	reviewStateReviewing
)

// ReviewModel walks imported transactions whose description still equals the raw bank text and
// lets the user rename them. Every rename is learned as a mapping for later imports.
type ReviewModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service

	state           reviewState
	timeframePicker TimeframePicker

	queue     []*transaction.Transaction
	currentTx *transaction.Transaction
	descInput textinput.Model

	status     string
	loading    bool
	totalCount int
}

func NewReviewModel(txSvc *transaction.Service, matchSvc *matching.Service, cycleOf CycleFunc, now func() time.Time) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Description"
	ti.Width = 50

	return ReviewModel{
		txService:       txSvc,
		matchingService: matchSvc,
		timeframePicker: NewTimeframePicker(cycleOf, now),
		descInput:       ti,
	}
}

func (m ReviewModel) Title() string { return "Review Imported Descriptions" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateReviewing {
		return "Enter: save & next | Tab: skip | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		filter := transaction.ListFilter{}
		if !msg.All {
			filter.StartDate = new(msg.Start)
			filter.EndDate = new(msg.End)
		}

		m.state = reviewStateReviewing
		m.loading = true

		return m, m.loadQueueCmd(filter)

	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading transactions: %v", msg.err)
			return m, nil
		}

		m.queue = msg.txs
		m.totalCount = len(msg.txs)

		if len(m.queue) == 0 {
			m.status = "Nothing to review."
			return m, nil
		}

		m.nextTx()

		return m, textinput.Blink

	case reviewSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.nextTx()

		return m, textinput.Blink

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.state == reviewStateTimeframe {
			if msg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}

			var cmd tea.Cmd
			m.timeframePicker, cmd = m.timeframePicker.Update(msg)

			return m, cmd
		}

		switch msg.Type {
		case tea.KeyEsc:
			m.state = reviewStateTimeframe
			m.timeframePicker.Reset()
			m.currentTx = nil
			m.queue = nil

			return m, nil
		case tea.KeyTab:
			m.nextTx()
			return m, nil
		case tea.KeyEnter:
			if m.currentTx == nil {
				return m, nil
			}

			desc := strings.TrimSpace(m.descInput.Value())
			if desc == "" {
				m.status = "Description cannot be empty."
				return m, nil
			}

			return m, m.saveCmd(m.currentTx, desc)
		}
	}

	if m.state == reviewStateTimeframe {
		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)

	return m, cmd
}

func (m ReviewModel) View() string {
	if m.state == reviewStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.timeframePicker.View())
	}

	var content string

	switch {
	case m.loading:
		content = "Loading transactions..."
	case m.currentTx != nil:
		info := fmt.Sprintf(
			"Date: %s\nType: %s\nAmount: %s\nRaw:  %s\n",
			FormatDate(m.currentTx.Date),
			m.currentTx.Type,
			FormatAmount(m.currentTx.Amount),
			m.currentTx.RawDescription,
		)
		content = fmt.Sprintf("%s\n\n%s\nRename Description:\n%s", m.status, info, m.descInput.View())
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func (m *ReviewModel) nextTx() {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.status = "All done! Nothing left to review."
		m.descInput.Blur()

		return
	}

	m.currentTx = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.descInput.Focus()

	ctx, cancel := DbCtx()
	defer cancel()

	suggestion, _ := m.matchingService.Suggest(ctx, m.currentTx.RawDescription)
	if suggestion == "" {
		suggestion = m.currentTx.RawDescription
	}

	m.descInput.SetValue(suggestion)
}

// needsReview reports an imported transaction nobody has renamed yet.
func needsReview(tx *transaction.Transaction) bool {
	return tx.RawDescription != "" && tx.Description == tx.RawDescription
}

type loadQueueMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ReviewModel) loadQueueCmd(filter transaction.ListFilter) tea.Cmd {
	txSvc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := txSvc.List(ctx, filter)
		if err != nil {
			return loadQueueMsg{err: err}
		}

		var queue []*transaction.Transaction

		for _, tx := range txs {
			if needsReview(tx) {
				queue = append(queue, tx)
			}
		}

		return loadQueueMsg{txs: queue}
	}
}

type reviewSaveMsg struct {
	err error
}

func (m ReviewModel) saveCmd(current *transaction.Transaction, desc string) tea.Cmd {
	txSvc := m.txService
	matchSvc := m.matchingService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if desc != current.RawDescription {
			if err := matchSvc.Learn(ctx, current.RawDescription, desc); err != nil {
				return reviewSaveMsg{err: err}
			}
		}

		tx := *current
		tx.Description = desc

		return reviewSaveMsg{err: txSvc.Update(ctx, &tx)}
	}
}
