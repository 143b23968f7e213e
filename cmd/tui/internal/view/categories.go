package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/category"
)

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateAdd
)

type CategoriesModel struct {
	CommonModel
	categoryService *category.Service
	userID          uuid.UUID

	state      categoriesState
	cursor     int
	categories []*category.Category
	form       *huh.Form

	loading bool
	err     error
	status  string

	formName string
}

func NewCategoriesModel(categorySvc *category.Service, userID uuid.UUID) CategoriesModel {
	return CategoriesModel{
		categoryService: categorySvc,
		userID:          userID,
		loading:         true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }
func (m CategoriesModel) ShortHelp() string {
	if m.state == categoriesStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.categories = msg.categories
		if m.cursor >= len(m.categories) {
			m.cursor = max(0, len(m.categories)-1)
		}

		return m, nil

	case categorySavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}
		m.state = categoriesStateBrowse
		m.form = nil
		return m, m.loadCmd()
	}

	switch m.state {
	case categoriesStateBrowse:
		return m.updateBrowse(msg)
	case categoriesStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "a":
		return m.enterAddMode()
	case "x":
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m CategoriesModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = categoriesStateAdd
	return m, m.form.Init()
}

func (m CategoriesModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateBrowse
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

	name := m.form.GetString("name")

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.categoryService.Create(ctx, m.userID, name)
		return categorySavedMsg{err: err}
	}
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Categories"))
	b.WriteString("\n\n")

	if len(m.categories) == 0 {
		b.WriteString(faintStyle.Render("No categories yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, c := range m.categories {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, c.Name))
	}

	content := b.String()

	if m.state == categoriesStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Category\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// Messages

type loadCategoriesMsg struct {
	categories []*category.Category
	err        error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		categories, err := m.categoryService.List(ctx, m.userID)
		return loadCategoriesMsg{categories: categories, err: err}
	}
}

type categorySavedMsg struct {
	err error
}

func (m CategoriesModel) deleteCmd() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.categories) {
		return nil
	}

	id := m.categories[m.cursor].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return categorySavedMsg{err: m.categoryService.Delete(ctx, m.userID, id)}
	}
}
