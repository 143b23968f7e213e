package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/budget"
	"github.com/mwhitfield/spendlog/internal/money"
	"github.com/mwhitfield/spendlog/internal/report"
)

const budgetBarWidth = 24

var statusColors = map[report.Status]lipgloss.Color{
	report.StatusOnTrack:    lipgloss.Color("46"),
	report.StatusNearlyFull: lipgloss.Color("214"),
	report.StatusOverBudget: lipgloss.Color("196"),
}

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateEdit
)

type BudgetsModel struct {
	CommonModel
	budgetService *budget.Service
	reportService *report.Service
	userID        uuid.UUID

	state    budgetsState
	cursor   int
	budgets  []*budget.Budget
	statuses map[string]report.BudgetStatus
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formCategory string
	formAmount   string
}

func NewBudgetsModel(budgetSvc *budget.Service, reportSvc *report.Service, userID uuid.UUID) BudgetsModel {
	return BudgetsModel{
		budgetService: budgetSvc,
		reportService: reportSvc,
		userID:        userID,
		loading:       true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }
func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateEdit {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: set budget | e: edit | x: delete | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.budgets = msg.budgets
		m.statuses = make(map[string]report.BudgetStatus, len(msg.statuses))
		for _, s := range msg.statuses {
			m.statuses[s.Category] = s
		}

		if m.cursor >= len(m.budgets) {
			m.cursor = max(0, len(m.budgets)-1)
		}

		return m, nil

	case budgetSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = budgetsStateBrowse
		m.form = nil
		return m, m.loadCmd()
	}

	switch m.state {
	case budgetsStateBrowse:
		return m.updateBrowse(msg)
	case budgetsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.budgets)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "a":
		return m.enterEditMode("", "")
	case "e":
		if m.cursor >= 0 && m.cursor < len(m.budgets) {
			b := m.budgets[m.cursor]
			return m.enterEditMode(b.Category, FormatAmount(b.Amount))
		}
	case "x":
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m BudgetsModel) enterEditMode(category, amount string) (tea.Model, tea.Cmd) {
	m.formCategory = category
	m.formAmount = amount

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Monthly limit").
				Placeholder("300.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := money.ParseCents(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateEdit
	return m, m.form.Init()
}

func (m BudgetsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateBrowse
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

	return m, m.saveCmd()
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Monthly Budgets"))
	b.WriteString("\n\n")

	if len(m.budgets) == 0 {
		b.WriteString(faintStyle.Render("No budgets set. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, bd := range m.budgets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		s := m.statuses[bd.Category]

		b.WriteString(fmt.Sprintf("%s%-20s %s %10s / %-10s %s\n",
			cursor,
			truncate(bd.Category, 20),
			budgetBar(s),
			FormatAmount(s.Spent),
			FormatAmount(bd.Amount),
			statusLabel(s.Status),
		))
	}

	content := b.String()

	if m.state == budgetsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Set Budget\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func budgetBar(s report.BudgetStatus) string {
	filled := budgetBarWidth
	if s.Utilization < 1 {
		filled = int(s.Utilization * budgetBarWidth)
	}

	color, ok := statusColors[s.Status]
	if !ok {
		color = lipgloss.Color("240")
	}

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		barBackStyle.Render(strings.Repeat("░", budgetBarWidth-filled))
}

func statusLabel(s report.Status) string {
	color, ok := statusColors[s]
	if !ok {
		return string(s)
	}

	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}

// Messages

type loadBudgetsMsg struct {
	budgets  []*budget.Budget
	statuses []report.BudgetStatus
	err      error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.budgetService.List(ctx, m.userID)
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		statuses, err := m.reportService.BudgetOverview(ctx, m.userID, time.Now())
		if err != nil {
			return loadBudgetsMsg{err: err}
		}

		return loadBudgetsMsg{budgets: budgets, statuses: statuses}
	}
}

type budgetSavedMsg struct {
	err error
}

func (m BudgetsModel) saveCmd() tea.Cmd {
	category := strings.TrimSpace(m.form.GetString("category"))

	amount, err := money.ParseCents(m.form.GetString("amount"))
	if err != nil {
		return func() tea.Msg { return budgetSavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.budgetService.Upsert(ctx, m.userID, category, amount)
		return budgetSavedMsg{err: err}
	}
}

func (m BudgetsModel) deleteCmd() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.budgets) {
		return nil
	}

	id := m.budgets[m.cursor].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return budgetSavedMsg{err: m.budgetService.Delete(ctx, m.userID, id)}
	}
}
