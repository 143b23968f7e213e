package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/money"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateAdd
	expensesStateEdit
)

type ExpensesModel struct {
	CommonModel
	expenseService *expense.Service
	userID         uuid.UUID

	state    expensesState
	table    table.Model
	expenses []*expense.Expense
	form     *huh.Form

	dateFilterIdx int

	filter  expense.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formAmount   string
	formCategory string
	formDesc     string
	formDate     string
}

func NewExpensesModel(expenseSvc *expense.Service, userID uuid.UUID) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 20},
		{Title: "Description", Width: 40},
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

	return ExpensesModel{
		expenseService: expenseSvc,
		userID:         userID,
		table:          t,
		filter:         expense.ListFilter{},
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }
func (m ExpensesModel) ShortHelp() string {
	if m.state != expensesStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | e: edit | x: delete | d: date filter | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.expenses = msg.expenses
		m.refreshTable()
		return m, nil

	case expenseSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ExpensesModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := money.ParseCents(s)
					return err
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Food").
				Value(&m.formCategory),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD (blank for undated)").
				Value(&m.formDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formCategory = ""
	m.formDesc = ""
	m.formDate = FormatDate(time.Now())

	m.form = m.newForm()
	m.state = expensesStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m ExpensesModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return m, nil
	}

	e := m.expenses[idx]
	m.formAmount = FormatAmount(e.Amount)
	m.formCategory = e.Category
	m.formDesc = e.Description
	m.formDate = ""
	if !e.Date.IsZero() {
		m.formDate = FormatDate(e.Date)
	}

	m.form = m.newForm()
	m.state = expensesStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()
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

	return m, m.saveCmd()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf("Filter: [d] Date: %s", activeStyle(dateLabels[m.dateFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != expensesStateBrowse && m.form != nil {
		title := "Add Expense"
		if m.state == expensesStateEdit {
			title = "Edit Expense"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

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

func (m *ExpensesModel) applyFilter() {
	now := time.Now()
	switch m.dateFilterIdx {
	case 1:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	case 2:
		s := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			FormatAmount(e.Amount),
			e.Bucket(),
			e.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadExpensesMsg struct {
	expenses []*expense.Expense
	err      error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenseService.List(ctx, m.userID, m.filter)
		return loadExpensesMsg{expenses: expenses, err: err}
	}
}

type expenseSavedMsg struct {
	err error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	amount, err := money.ParseCents(m.form.GetString("amount"))
	if err != nil {
		return func() tea.Msg { return expenseSavedMsg{err: err} }
	}

	var date time.Time
	if s := strings.TrimSpace(m.form.GetString("date")); s != "" {
		date, _ = time.Parse(time.DateOnly, s)
	}

	params := expense.CreateParams{
		Amount:      amount,
		Category:    strings.TrimSpace(m.form.GetString("category")),
		Description: strings.TrimSpace(m.form.GetString("description")),
		Date:        date,
	}

	if m.state == expensesStateAdd {
		return func() tea.Msg {
			ctx, cancel := DbCtx()
			defer cancel()

			_, err := m.expenseService.Create(ctx, m.userID, params)
			return expenseSavedMsg{err: err}
		}
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	e := m.expenses[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e.Amount = params.Amount
		e.Category = params.Category
		e.Description = params.Description
		e.Date = params.Date

		return expenseSavedMsg{err: m.expenseService.Update(ctx, e)}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	id := m.expenses[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return expenseSavedMsg{err: m.expenseService.Delete(ctx, m.userID, id)}
	}
}
