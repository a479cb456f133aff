package mvc

import (
	"fmt"
	"strings"

	"social/client/message"
	"social/client/terminal"
	"social/util/model"

	tea "github.com/charmbracelet/bubbletea"
)

type userMsg struct {
	user model.User
	err  error
}

// UserPage es el perfil de un usuario, propio o ajeno
type UserPage struct {
	username string
	self     bool
	user     model.User
	loaded   bool
	status   status

	prev tea.Model
	app  *App
}

func InitialUserPageModel(app *App, username string, prev tea.Model) UserPage {
	m := UserPage{app: app, username: username, prev: prev}
	if me, ok := app.Session.User(); ok && (username == "" || strings.EqualFold(me.Username, username)) {
		m.self = true
		m.username = me.Username
		m.user = me
		m.loaded = true
	}
	return m
}

func GetUserMsg(app *App, username string, self bool) tea.Cmd {
	return func() tea.Msg {
		if self {
			u, err := app.Api.Me(app.ctx(), app.token())
			if err == nil {
				app.Session.SetUser(u)
			}
			return userMsg{user: u, err: err}
		}
		u, err := app.Api.UserByUsername(app.ctx(), app.token(), username)
		return userMsg{user: u, err: err}
	}
}

func (m UserPage) Init() tea.Cmd {
	return GetUserMsg(m.app, m.username, m.self)
}

func (m UserPage) back() (tea.Model, tea.Cmd) {
	if m.prev == nil {
		return InitialHomeModel(m.app), nil
	}
	if !m.loaded {
		return m.prev, nil
	}
	user := m.user
	return m.prev, func() tea.Msg { return userUpdatedMsg{user: user} }
}

func (m UserPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "left":
			return m.back()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			return m, GetUserMsg(m.app, m.username, m.self)
		case "f":
			if m.self || !m.loaded {
				break
			}
			next, cmd, ok := m.app.toggleFollow(m.user)
			if ok {
				m.user = next
				return m, cmd
			}
		case "e":
			if m.self {
				return InitialEditProfileModel(m.app, m), nil
			}
		}
	case userMsg:
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		// un follow en vuelo manda sobre la copia del servidor
		m.user = m.app.overlayUser(msg.user)
		m.loaded = true
	case followRevertedMsg:
		if msg.user.Id == m.user.Id {
			m.user = msg.user
		}
		m.prev = forwardRevert(m.prev, msg)
	case likeRevertedMsg, readRevertedMsg:
		m.prev = forwardRevert(m.prev, msg)
	case profileSavedMsg:
		if msg.err == nil {
			m.user = msg.user
		}
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, nil
}

func (m UserPage) View() string {
	if !m.loaded {
		return "@" + m.username + "\n\nLoading...\n\n" + m.status.View()
	}

	u := m.user
	s := titleStyle.Render(u.Author().DisplayName()) + "  @" + userStyle.Render(u.Username)
	if u.Private {
		s += dimStyle.Render("  [private]")
	}
	s += "\n\n"

	s += fmt.Sprintf("%d posts   %d followers   %d following\n\n", u.PostsCount, u.FollowersCount, u.FollowingCount)

	if u.Bio != "" {
		s += terminal.Wrap(u.Bio, maxLineLen) + "\n"
	}
	if u.Website != "" {
		s += unreadStyle.Render(u.Website) + "\n"
	}
	if u.Email != "" && m.self {
		s += dimStyle.Render(u.Email) + "\n"
	}
	s += "\n"

	if !m.self {
		switch {
		case u.IsFollowing:
			s += cursorStyle.Render(" Following ") + "\n"
		case u.FollowsMe:
			s += cursorStyle.Render(" Follow back ") + "\n"
		default:
			s += cursorStyle.Render(" Follow ") + "\n"
		}
		if u.FollowsMe {
			s += dimStyle.Render("Follows you") + "\n"
		}
		s += "\n"
	}

	s += m.status.View()
	if m.self {
		s += "e edit profile · ctrl+r refresh · esc back\n"
	} else {
		s += "f follow/unfollow · ctrl+r refresh · esc back\n"
	}
	return s
}
