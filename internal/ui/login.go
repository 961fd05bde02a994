package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authMode selects between the login and sign-up forms, which share a
// screen.
type authMode int

const (
	modeLogin authMode = iota
	modeSignUp
)

// loginModel is the login/sign-up screen.
type loginModel struct {
	deps
	mode authMode

	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password

	submitting bool
	errMsg     string
	notice     string
}

type loggedInMsg struct {
	token string
	err   error
}

type signedUpMsg struct{ err error }

func newLoginModel(d deps, mode authMode, notice string) loginModel {
	m := loginModel{deps: d, mode: mode, notice: notice}

	m.username = textinput.New()
	m.username.Placeholder = "username"
	m.username.CharLimit = 50
	m.username.Width = 30

	m.password = textinput.New()
	m.password.Placeholder = "password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.CharLimit = 100
	m.password.Width = 30

	return m
}

func (m loginModel) Init() tea.Cmd {
	return m.username.Focus()
}

func (m loginModel) login() tea.Cmd {
	svc := m.svc
	username, password := m.username.Value(), m.password.Value()
	return func() tea.Msg {
		token, err := svc.Login(context.Background(), username, password)
		return loggedInMsg{token: token, err: err}
	}
}

func (m loginModel) signUp() tea.Cmd {
	svc := m.svc
	username, password := m.username.Value(), m.password.Value()
	return func() tea.Msg {
		return signedUpMsg{err: svc.SignUp(context.Background(), username, password)}
	}
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedInMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		if err := m.store.Login(msg.token); err != nil {
			// Logged in for this run; only persistence failed.
			m.log.Warn("login: %v", err)
		}
		return m, navigate(showListMsg{})

	case signedUpMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		return m, navigate(showLoginMsg{notice: "Account created. Log in to continue."})

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab:
			m.focus = 1 - m.focus
			return m.applyFocus()
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			return m, navigate(showListMsg{})
		}
		switch msg.String() {
		case "ctrl+n":
			if m.mode == modeLogin {
				return m, navigate(showSignUpMsg{})
			}
			return m, navigate(showLoginMsg{})
		}
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m loginModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if strings.TrimSpace(m.username.Value()) == "" || m.password.Value() == "" {
		m.errMsg = "Username and password are required."
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""
	if m.mode == modeSignUp {
		return m, m.signUp()
	}
	return m, m.login()
}

func (m loginModel) applyFocus() (tea.Model, tea.Cmd) {
	if m.focus == 0 {
		m.password.Blur()
		return m, m.username.Focus()
	}
	m.username.Blur()
	return m, m.password.Focus()
}

func (m loginModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder

	if m.mode == modeSignUp {
		b.WriteString(titleStyle.Render("Sign Up"))
	} else {
		b.WriteString(titleStyle.Render("Log In"))
	}
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(secondaryStyle.Render("Submitting..."))
	}

	b.WriteString("\n\n")
	other := "ctrl+n sign up"
	if m.mode == modeSignUp {
		other = "ctrl+n log in"
	}
	b.WriteString(helpStyle.Render("enter submit · tab switch field · " + other + " · esc back"))
	return b.String()
}
