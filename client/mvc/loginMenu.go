package mvc

import (
	"social/client/message"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginDoneMsg struct{ err error }

type LoginPage struct {
	username textinput.Model
	password textinput.Model
	sending  bool
	status   status

	app *App
}

func InitialLoginModel(app *App) LoginPage {
	m := LoginPage{app: app}

	m.username = textinput.New()
	m.username.Placeholder = "Username or email"
	m.username.Focus()

	m.password = textinput.New()
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'

	return m
}

func (m LoginPage) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		passCmd tea.Cmd
		userCmd tea.Cmd
	)
	m.password, passCmd = m.password.Update(msg)
	m.username, userCmd = m.username.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.password.Focus()
			m.username.Blur()
		case "up", "shift+tab":
			m.username.Focus()
			m.password.Blur()
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return InitialHomeModel(m.app), nil
		case "enter":
			if m.sending {
				break
			}
			m.sending = true
			app, login, pass := m.app, m.username.Value(), m.password.Value()
			return m, func() tea.Msg {
				return loginDoneMsg{err: app.Session.Login(app.ctx(), login, pass)}
			}
		}
	case loginDoneMsg:
		m.sending = false
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		home := InitialHomeModel(m.app)
		cmd := home.status.set("Welcome back!")
		return home, cmd
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, tea.Batch(passCmd, userCmd)
}

func (m LoginPage) View() string {
	var s string

	s = titleStyle.Render("Login") + "\n\n"

	s += m.username.View() + "\n"
	s += m.password.View() + "\n\n"

	if m.sending {
		s += "Logging in...\n"
	}
	s += m.status.View()

	s += "\nenter para entrar · esc para volver\n\n"

	return s
}
