package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/anindyar/kasbon/cmd/tui/internal/view"
	"github.com/anindyar/kasbon/internal/config"
	"github.com/anindyar/kasbon/internal/database"
	"github.com/anindyar/kasbon/internal/ledger"
	ledgerStore "github.com/anindyar/kasbon/internal/ledger/store"
)

type model struct {
	ledgerService *ledger.Service

	currentView View

	kasirView    view.KasirModel
	productsView view.ProductsModel
	expensesView view.ExpensesModel
	journalView  view.JournalModel
	summaryView  view.SummaryModel
}

type View int

const (
	ViewMenu     View = 0
	ViewKasir    View = 1
	ViewProducts View = 2
	ViewExpenses View = 3
	ViewJournal  View = 4
	ViewSummary  View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var store ledger.Store = ledgerStore.NewMemory()

	if cfg.UsePostgres() {
		ctx := context.Background()

		db, err := database.Open(ctx, cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		pg, err := ledgerStore.NewPostgres(ctx, db)
		if err != nil {
			slog.Error("failed to prepare ledger store", "error", err)
			os.Exit(1)
		}

		store = pg
	}

	ledgerSvc := ledger.NewService(store)

	return model{
		ledgerService: ledgerSvc,
		currentView:   ViewMenu,
		kasirView:     view.NewKasirModel(ledgerSvc),
		productsView:  view.NewProductsModel(ledgerSvc),
		expensesView:  view.NewExpensesModel(ledgerSvc),
		journalView:   view.NewJournalModel(ledgerSvc),
		summaryView:   view.NewSummaryModel(ledgerSvc),
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
				m.currentView = ViewKasir
				m.kasirView = view.NewKasirModel(m.ledgerService)

				return m, m.kasirView.Init()
			case "2":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.ledgerService)

				return m, m.productsView.Init()
			case "3":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.ledgerService)

				return m, m.expensesView.Init()
			case "4":
				m.currentView = ViewJournal
				m.journalView = view.NewJournalModel(m.ledgerService)

				return m, m.journalView.Init()
			case "5":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.ledgerService)

				return m, m.summaryView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewKasir:
		var newModel tea.Model
		newModel, cmd = m.kasirView.Update(msg)
		m.kasirView = newModel.(view.KasirModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewJournal:
		var newModel tea.Model
		newModel, cmd = m.journalView.Update(msg)
		m.journalView = newModel.(view.JournalModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kasbon TUI\n\n" +
				"1. Kasir\n" +
				"2. Products\n" +
				"3. Expenses\n" +
				"4. Journal\n" +
				"5. Summary\n\n" +
				"q. Quit",
		)
	case ViewKasir:
		return m.kasirView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewJournal:
		return m.journalView.View()
	case ViewSummary:
		return m.summaryView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
