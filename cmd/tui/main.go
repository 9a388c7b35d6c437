package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/metadia/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/metadia/internal/config"
	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/database"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
	"github.com/MrJamesThe3rd/metadia/internal/importer"
	"github.com/MrJamesThe3rd/metadia/internal/ledger"
	"github.com/MrJamesThe3rd/metadia/internal/logging"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
	"github.com/MrJamesThe3rd/metadia/internal/state"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type model struct {
	appName           string
	txService         *transaction.Service
	matchingService   *matching.Service
	importService     *importer.Service
	obligationService *obligation.Service
	settingsService   *settings.Service
	dashboardService  *dashboard.Service

	currentView View

	dashboardView    view.DashboardModel
	billsView        view.BillsModel
	transactionsView view.TransactionsModel
	importView       view.ImportModel
	reviewView       view.ReviewModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewBills        View = 2
	ViewTransactions View = 3
	ViewImport       View = 4
	ViewReview       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		slog.Error("failed to create log directory", "error", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}

	if err := logging.SetupWriter(logFile, cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := view.DbCtx()
	defer cancel()

	store, err := state.Open(ctx, dataset.New(db, cfg.DB.Driver))
	if err != nil {
		slog.Error("failed to load data", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(store)
	matchSvc := matching.NewService(store)
	impSvc := importer.NewService()
	oblSvc := obligation.NewService(store)
	settingsSvc := settings.NewService(store)
	dashSvc := dashboard.NewService(store, ledger.Options{FuelKeyword: cfg.App.FuelKeyword})

	return model{
		appName:           cfg.App.Name,
		txService:         txSvc,
		matchingService:   matchSvc,
		importService:     impSvc,
		obligationService: oblSvc,
		settingsService:   settingsSvc,
		dashboardService:  dashSvc,
		currentView:       ViewMenu,
		importView:        view.NewImportModel(txSvc, impSvc, matchSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashboardService, m.settingsService, time.Now)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.dashboardService, m.obligationService, time.Now)

				return m, m.billsView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.matchingService, m.dashboardService.Cycle, time.Now)

				return m, m.transactionsView.Init()
			case "4":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "5":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.txService, m.matchingService, m.dashboardService.Cycle, time.Now)

				return m, m.reviewView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Bills\n" +
				"3. Transactions\n" +
				"4. Import Statement\n" +
				"5. Review Imported Descriptions\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		current = m.dashboardView
	case ViewBills:
		current = m.billsView
	case ViewTransactions:
		current = m.transactionsView
	case ViewImport:
		current = m.importView
	case ViewReview:
		current = m.reviewView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
