package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mwhitfield/spendlog/cmd/tui/internal/view"
	"github.com/mwhitfield/spendlog/internal/auth"
	authStore "github.com/mwhitfield/spendlog/internal/auth/store"
	"github.com/mwhitfield/spendlog/internal/budget"
	budgetStore "github.com/mwhitfield/spendlog/internal/budget/store"
	"github.com/mwhitfield/spendlog/internal/category"
	categoryStore "github.com/mwhitfield/spendlog/internal/category/store"
	"github.com/mwhitfield/spendlog/internal/config"
	"github.com/mwhitfield/spendlog/internal/database"
	"github.com/mwhitfield/spendlog/internal/expense"
	expenseStore "github.com/mwhitfield/spendlog/internal/expense/store"
	"github.com/mwhitfield/spendlog/internal/importer"
	"github.com/mwhitfield/spendlog/internal/report"
	"github.com/mwhitfield/spendlog/internal/suggest"
	suggestStore "github.com/mwhitfield/spendlog/internal/suggest/store"
)

type model struct {
	authService     *auth.Service
	expenseService  *expense.Service
	categoryService *category.Service
	budgetService   *budget.Service
	importService   *importer.Service
	suggestService  *suggest.Service
	reportService   *report.Service

	userID uuid.UUID
	email  string

	currentView View

	signInView     view.SignInModel
	dashboardView  view.DashboardModel
	expensesView   view.ExpensesModel
	budgetsView    view.BudgetsModel
	categoriesView view.CategoriesModel
	importView     view.ImportModel
}

type View int

const (
	ViewSignIn     View = 0
	ViewMenu       View = 1
	ViewDashboard  View = 2
	ViewExpenses   View = 3
	ViewBudgets    View = 4
	ViewCategories View = 5
	ViewImport     View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	expenseSvc := expense.NewService(expenseStore.New(db))
	categorySvc := category.NewService(categoryStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db))
	suggestSvc := suggest.NewService(suggestStore.New(db))
	impSvc := importer.NewService()
	reportSvc := report.NewService(expenseSvc, budgetSvc)

	return model{
		authService:     authSvc,
		expenseService:  expenseSvc,
		categoryService: categorySvc,
		budgetService:   budgetSvc,
		importService:   impSvc,
		suggestService:  suggestSvc,
		reportService:   reportSvc,
		currentView:     ViewSignIn,
		signInView:      view.NewSignInModel(authSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.signInView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.reportService, m.userID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.expenseService, m.userID)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.budgetService, m.reportService, m.userID)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.categoryService, m.userID)

				return m, m.categoriesView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.expenseService, m.importService, m.suggestService, m.userID)

				return m, m.importView.Init()
			}
		}
	case view.SignedInMsg:
		m.userID = msg.UserID
		m.email = msg.Email
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSignIn:
		var newModel tea.Model
		newModel, cmd = m.signInView.Update(msg)
		m.signInView = newModel.(view.SignInModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewSignIn:
		return m.signInView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Spendlog (" + m.email + ")\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Budgets\n" +
				"4. Categories\n" +
				"5. Import CSV\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewImport:
		return m.importView.View()
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
