package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/report"
)

const barWidth = 30

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	barBackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type DashboardModel struct {
	CommonModel
	reportService *report.Service
	userID        uuid.UUID

	dashboard *report.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(reportSvc *report.Service, userID uuid.UUID) DashboardModel {
	return DashboardModel{
		reportService: reportSvc,
		userID:        userID,
		loading:       true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false
		m.dashboard = msg.dashboard
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := m.dashboard

	var b strings.Builder

	b.WriteString(titleStyle.Render("Spending by Category"))
	b.WriteString("\n\n")

	if len(d.ByCategory) == 0 {
		b.WriteString(faintStyle.Render("No expenses yet."))
		b.WriteString("\n")
	}

	var maxTotal int64
	for _, ct := range d.ByCategory {
		maxTotal = max(maxTotal, ct.Total)
	}

	for _, ct := range d.ByCategory {
		b.WriteString(fmt.Sprintf("%-20s %10s  %s\n",
			truncate(ct.Category, 20),
			FormatAmount(ct.Total),
			bar(ct.Total, maxTotal),
		))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Last 7 Days"))
	b.WriteString("\n\n")

	var maxDay int64
	for _, p := range d.Weekly {
		maxDay = max(maxDay, p.Total)
	}

	for _, p := range d.Weekly {
		b.WriteString(fmt.Sprintf("%-4s %10s  %s\n", p.Label, FormatAmount(p.Total), bar(p.Total, maxDay)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("This month: %s\n", FormatAmount(d.MonthToDate)))
	b.WriteString(fmt.Sprintf("All time:   %s across %d expenses\n", FormatAmount(d.TotalSpent), d.ExpenseCount))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// bar renders a horizontal bar scaled against the largest value on screen.
func bar(value, maxValue int64) string {
	if maxValue <= 0 {
		return barBackStyle.Render(strings.Repeat("░", barWidth))
	}

	filled := int(value * barWidth / maxValue)
	if value > 0 && filled == 0 {
		filled = 1
	}

	return barStyle.Render(strings.Repeat("█", filled)) +
		barBackStyle.Render(strings.Repeat("░", barWidth-filled))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n-1] + "…"
}

type loadDashboardMsg struct {
	dashboard *report.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		dash, err := m.reportService.Dashboard(ctx, m.userID, time.Now())

		return loadDashboardMsg{dashboard: dash, err: err}
	}
}
