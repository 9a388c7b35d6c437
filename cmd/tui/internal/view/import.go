package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/metadia/internal/importer"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

const importTimeout = 2 * time.Minute

// formatAuto picks the statement format from the file extension.
const formatAuto importer.Format = ""

type importStep int

const (
	importStepFormat importStep = iota
	importStepFile
	importStepRunning
	importStepConflicts
	importStepDone
)

// importOutcome is what the last import did, shown on the result screen.
type importOutcome struct {
	file     string
	parsed   int
	imported int
	skipped  int
	err      error
}

type ImportModel struct {
	CommonModel
	txService       *transaction.Service
	importService   *importer.Service
	matchingService *matching.Service

	step       importStep
	formatForm *huh.Form
	format     importer.Format
	picker     filepicker.Model

	pending   []transaction.CreateParams
	conflicts []transaction.Conflict
	keep      map[int]bool
	review    list.Model

	outcome importOutcome
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".ofx", ".qfx"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	m := ImportModel{
		txService:       txSvc,
		importService:   impSvc,
		matchingService: matchSvc,
		picker:          fp,
		keep:            make(map[int]bool),
	}
	m.formatForm = newFormatForm()

	return m
}

func newFormatForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Format]().
				Key("format").
				Title("Statement format").
				Options(
					huh.NewOption("Detect from file extension", formatAuto),
					huh.NewOption("CSV (CGD, Nubank)", importer.FormatCSV),
					huh.NewOption("OFX / QFX", importer.FormatOFX),
				),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.step {
	case importStepConflicts:
		return "Space: keep duplicate | a: keep all | n: keep none | Enter: confirm | Esc: cancel"
	case importStepDone:
		return "Esc: import another"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.formatForm.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}

		if m.step == importStepConflicts {
			return m.updateConflicts(msg)
		}

	case parsedMsg:
		return m.handleParsed(msg)

	case savedMsg:
		m.step = importStepDone
		m.outcome.imported = msg.imported
		m.outcome.skipped = len(m.conflicts) - msg.kept
		m.outcome.err = msg.err

		return m, nil
	}

	switch m.step {
	case importStepFormat:
		return m.updateFormat(msg)
	case importStepFile:
		return m.updatePicker(msg)
	}

	return m, nil
}

func (m ImportModel) back() (tea.Model, tea.Cmd) {
	switch m.step {
	case importStepFormat:
		return m, Back
	case importStepRunning:
		return m, nil
	}

	m.step = importStepFormat
	m.pending = nil
	m.conflicts = nil
	m.keep = make(map[int]bool)
	m.outcome = importOutcome{}
	m.formatForm = newFormatForm()

	return m, m.formatForm.Init()
}

func (m ImportModel) updateFormat(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.formatForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.formatForm = f
	}

	if m.formatForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.format, _ = m.formatForm.Get("format").(importer.Format)
	m.step = importStepFile

	return m, m.picker.Init()
}

func (m ImportModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.step = importStepRunning
		m.outcome = importOutcome{file: filepath.Base(path)}

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleParsed(msg parsedMsg) (tea.Model, tea.Cmd) {
	m.outcome.parsed = msg.parsed

	if msg.err != nil {
		m.step = importStepDone
		m.outcome.err = msg.err

		return m, nil
	}

	if len(msg.result.Conflicts) == 0 {
		m.step = importStepDone
		m.outcome.imported = len(msg.result.Imported)

		return m, nil
	}

	m.pending = msg.result.New
	m.conflicts = msg.result.Conflicts
	m.keep = make(map[int]bool)
	m.step = importStepConflicts

	items := make([]list.Item, len(m.conflicts))
	for i := range m.conflicts {
		items[i] = conflictItem{index: i, conflict: m.conflicts[i]}
	}

	m.review = list.New(items, conflictDelegate{keep: m.keep}, 80, 20)
	m.review.Title = fmt.Sprintf("%d rows already imported", len(m.conflicts))
	m.review.SetShowStatusBar(false)
	m.review.SetFilteringEnabled(false)
	m.review.SetShowHelp(false)

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		i := m.review.Index()
		m.keep[i] = !m.keep[i]

		return m, nil
	case "a", "n":
		for i := range m.conflicts {
			m.keep[i] = msg.String() == "a"
		}

		return m, nil
	case "enter":
		return m, m.saveCmd()
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case importStepFormat:
		return pad.Render(m.formatForm.View())
	case importStepFile:
		label := "detected from extension"
		if m.format != formatAuto {
			label = string(m.format)
		}

		return pad.Render(fmt.Sprintf("Pick a statement (%s):\n\n%s", label, m.picker.View()))
	case importStepRunning:
		return pad.Render(fmt.Sprintf("Importing %s...", m.outcome.file))
	case importStepConflicts:
		return pad.Render(m.review.View())
	case importStepDone:
		return pad.Render(m.outcomeView())
	}

	return ""
}

func (m ImportModel) outcomeView() string {
	o := m.outcome

	if o.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("%s: %v", o.file, o.err))
	}

	summary := fmt.Sprintf("%s: %d rows read, %d imported", o.file, o.parsed, o.imported)
	if o.skipped > 0 {
		summary += fmt.Sprintf(", %d duplicates skipped", o.skipped)
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(summary)
}

// Messages

type parsedMsg struct {
	parsed int
	result *transaction.ImportResult
	err    error
}

type savedMsg struct {
	imported int
	kept     int
	err      error
}

// parseCmd reads the statement, applies learned descriptions and stores it unless some rows
// were imported before.
func (m ImportModel) parseCmd(path string) tea.Cmd {
	format := m.format
	if format == formatAuto {
		format = importer.FormatOf(path)
	}

	impSvc, matchSvc, txSvc := m.importService, m.matchingService, m.txService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		params, err := impSvc.Import(format, f)
		if err != nil {
			return parsedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		params, err = matchSvc.Apply(ctx, params)
		if err != nil {
			return parsedMsg{parsed: len(params), err: err}
		}

		result, err := txSvc.ImportBatch(ctx, params)

		return parsedMsg{parsed: len(params), result: result, err: err}
	}
}

func (m ImportModel) saveCmd() tea.Cmd {
	params := append([]transaction.CreateParams(nil), m.pending...)

	kept := 0

	for i, c := range m.conflicts {
		if m.keep[i] {
			params = append(params, c.Incoming)
			kept++
		}
	}

	txSvc := m.txService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := txSvc.CreateBatch(ctx, params)

		return savedMsg{imported: len(txs), kept: kept, err: err}
	}
}

type conflictItem struct {
	index    int
	conflict transaction.Conflict
}

func (i conflictItem) FilterValue() string { return i.conflict.Incoming.RawDescription }

type conflictDelegate struct {
	keep map[int]bool
}

func (d conflictDelegate) Height() int                             { return 2 }
func (d conflictDelegate) Spacing() int                            { return 1 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	mark := "[ ]"
	if d.keep[item.index] {
		mark = "[x]"
	}

	pointer := "  "
	if index == m.Index() {
		pointer = "> "
	}

	in, ex := item.conflict.Incoming, item.conflict.Existing

	fmt.Fprintf(w, "%s%s %s  %s %s  %s\n", pointer, mark,
		FormatDate(in.Date), in.Type, FormatAmount(in.Amount), in.Description)
	fmt.Fprintf(w, "      %s\n", lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("already stored as %q on %s", ex.Description, FormatDate(ex.Date))))
}
