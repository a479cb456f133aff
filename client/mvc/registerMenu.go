package mvc

import (
	"social/client/auth"
	"social/client/message"
	"social/client/state"
	"social/client/terminal"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type signupDoneMsg struct{ err error }

const (
	regUsername = iota
	regEmail
	regName
	regPassword
)

type RegisterPage struct {
	inputs  []textinput.Model
	focus   int
	sending bool
	status  status

	app *App
}

func InitialRegisterModel(app *App) RegisterPage {
	m := RegisterPage{app: app}

	placeholders := []string{"Username", "Email", "Name (optional)", "Password"}
	m.inputs = make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		m.inputs[i] = in
	}
	m.inputs[regName].CharLimit = state.MaxName
	m.inputs[regPassword].EchoMode = textinput.EchoPassword
	m.inputs[regPassword].EchoCharacter = '•'
	m.inputs[regUsername].Focus()

	return m
}

func (m RegisterPage) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterPage) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m RegisterPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var inputCmd tea.Cmd
	m.inputs[m.focus], inputCmd = m.inputs[m.focus].Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "tab":
			m.setFocus(m.focus + 1)
		case "up", "shift+tab":
			m.setFocus(m.focus - 1)
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return InitialHomeModel(m.app), nil
		case "enter":
			if m.sending {
				break
			}
			params := auth.SignupParams{
				Username: m.inputs[regUsername].Value(),
				Email:    m.inputs[regEmail].Value(),
				Name:     m.inputs[regName].Value(),
				Password: m.inputs[regPassword].Value(),
			}
			// se valida antes de enviar para no esperar al servidor
			if err := state.ValidateSignup(params.Username, params.Email, params.Password); err != nil {
				cmd := m.status.fail(err)
				return m, cmd
			}
			m.sending = true
			app := m.app
			return m, func() tea.Msg {
				return signupDoneMsg{err: app.Session.Signup(app.ctx(), params)}
			}
		}
	case signupDoneMsg:
		m.sending = false
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		home := InitialHomeModel(m.app)
		cmd := home.status.set("Account created")
		return home, cmd
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, inputCmd
}

func (m RegisterPage) View() string {
	s := titleStyle.Render("Register") + "\n\n"

	for _, in := range m.inputs {
		s += in.View() + "\n"
	}
	s += "\n"

	if m.sending {
		s += "Creating account...\n"
	}
	s += m.status.View()

	_, height := terminal.Size()
	s = terminal.PadLines(s, height-3)

	s += "enter para registrarse · esc para volver\n"
	return s
}
