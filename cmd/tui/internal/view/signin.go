package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwhitfield/spendlog/internal/auth"
)

// SignedInMsg carries the authenticated user out of the sign-in screen.
type SignedInMsg struct {
	UserID uuid.UUID
	Email  string
}

type SignInModel struct {
	CommonModel
	authService *auth.Service

	form *huh.Form

	email    string
	password string
	register bool

	submitting bool
	err        error
}

func NewSignInModel(authSvc *auth.Service) SignInModel {
	m := SignInModel{authService: authSvc}
	m.form = m.newForm()

	return m
}

func (m SignInModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("invalid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),

			huh.NewConfirm().
				Key("register").
				Title("New account?").
				Affirmative("Register").
				Negative("Sign in").
				Value(&m.register),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m SignInModel) Title() string { return "Sign In" }

func (m SignInModel) ShortHelp() string { return "Navigate form | Ctrl+C: quit" }

func (m SignInModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg {
			return SignedInMsg{UserID: msg.userID, Email: msg.email}
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.err = nil

	return m, m.signInCmd(
		m.form.GetString("email"),
		m.form.GetString("password"),
		m.form.GetBool("register"),
	)
}

func (m SignInModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Signing in...")
	}

	content := "Spendlog\n\n" + m.form.View()

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type signInResultMsg struct {
	userID uuid.UUID
	email  string
	err    error
}

func (m SignInModel) signInCmd(email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if register {
			user, err := m.authService.Register(ctx, email, password)
			if err != nil {
				return signInResultMsg{err: err}
			}

			return signInResultMsg{userID: user.ID, email: user.Email}
		}

		user, _, err := m.authService.Login(ctx, email, password)
		if err != nil {
			return signInResultMsg{err: err}
		}

		return signInResultMsg{userID: user.ID, email: user.Email}
	}
}
