package mvc

import (
	"fmt"

	"social/client/message"
	"social/util/logging"

	tea "github.com/charmbracelet/bubbletea"
)

type restoredMsg struct{ err error }
type loggedOutMsg struct{ err error }

type HomePage struct {
	options []string
	cursor  int
	status  status

	app *App
}

func InitialHomeModel(app *App) HomePage {
	m := HomePage{app: app}

	if !app.Session.LoggedIn() {
		m.options = []string{
			"Login",
			"Register",
		}
	} else {
		m.options = []string{
			"Feed",
			"New post",
			"Search users",
			"Notifications",
			"My profile",
			"Edit profile",
			"Logout",
		}
	}

	return m
}

// Init recupera la sesión guardada si todavía no se ha hecho
func (m HomePage) Init() tea.Cmd {
	if !m.app.Session.Loading() {
		return nil
	}
	app := m.app
	return func() tea.Msg {
		return restoredMsg{err: app.Session.Restore(app.ctx())}
	}
}

func (m HomePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case restoredMsg:
		next := InitialHomeModel(m.app)
		if msg.err != nil {
			logging.Warn("no se pudo recuperar la sesión", "err", msg.err)
			cmd := next.status.fail(msg.err)
			return next, cmd
		}
		return next, nil
	case loggedOutMsg:
		next := InitialHomeModel(m.app)
		if msg.err != nil {
			cmd := next.status.fail(msg.err)
			return next, cmd
		}
		cmd := next.status.set("Logged out")
		return next, cmd
	case message.ResetMsg:
		m.status.expire(msg)
	case tea.KeyMsg:
		if m.app.Session.Loading() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "down", "j":
			m.cursor++
			if m.cursor >= len(m.options) {
				m.cursor = 0
			}
		case "up", "k":
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.options) - 1
			}
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", "right":
			return m.open(m.options[m.cursor])
		}
	}
	return m, nil
}

func (m HomePage) open(option string) (tea.Model, tea.Cmd) {
	switch option {
	case "Login":
		return InitialLoginModel(m.app), nil
	case "Register":
		return InitialRegisterModel(m.app), nil
	case "Feed":
		feed := InitialFeedModel(m.app)
		return feed, feed.Init()
	case "New post":
		return InitialNewPostModel(m.app), nil
	case "Search users":
		search := InitialUserSearchPageModel(m.app)
		return search, search.Init()
	case "Notifications":
		page := InitialNotificationsModel(m.app)
		return page, page.Init()
	case "My profile":
		u, _ := m.app.Session.User()
		page := InitialUserPageModel(m.app, u.Username, nil)
		return page, page.Init()
	case "Edit profile":
		return InitialEditProfileModel(m.app, nil), nil
	case "Logout":
		app := m.app
		return m, func() tea.Msg {
			return loggedOutMsg{err: app.Session.Logout(app.ctx())}
		}
	}
	return m, nil
}

func (m HomePage) View() string {
	if m.app.Session.Loading() {
		return "Loading session...\n"
	}

	var s string
	if u, ok := m.app.Session.User(); ok {
		s = fmt.Sprintf("Hola, %s\n\n", u.Author().DisplayName())
	}
	s += "Opciones disponibles:\n"

	for i, option := range m.options {
		if i == m.cursor {
			s += "\t" + cursorStyle.Render(option) + "\n"
		} else {
			s += "\t" + option + "\n"
		}
	}

	s += "\n" + m.status.View()
	s += "\nPresione 'q' o 'ctrl-c' para salir\n\n"

	return s
}
