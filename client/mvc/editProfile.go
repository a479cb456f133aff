package mvc

import (
	"fmt"
	"strings"

	"social/client/api"
	"social/client/auth"
	"social/client/message"
	"social/client/state"
	"social/util/logging"
	"social/util/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type profileSavedMsg struct {
	user model.User
	err  error
}

const (
	epName = iota
	epBio
	epWebsite
	epAvatar
	epPrivate // no es un textinput
)

type EditProfilePage struct {
	inputs  []textinput.Model
	private bool
	focus   int
	sending bool
	status  status

	prev tea.Model
	app  *App
}

func InitialEditProfileModel(app *App, prev tea.Model) EditProfilePage {
	m := EditProfilePage{app: app, prev: prev}
	me, _ := app.Session.User()

	placeholders := []string{"Name", "Bio", "Website", "Avatar image path (optional)"}
	m.inputs = make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		m.inputs[i] = in
	}
	m.inputs[epName].CharLimit = state.MaxName
	m.inputs[epBio].CharLimit = state.MaxBio
	m.inputs[epName].SetValue(me.Name)
	m.inputs[epBio].SetValue(me.Bio)
	m.inputs[epWebsite].SetValue(me.Website)
	m.private = me.Private
	m.inputs[epName].Focus()

	return m
}

func (m EditProfilePage) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditProfilePage) setFocus(i int) {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (i + epPrivate + 1) % (epPrivate + 1)
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
}

func (m EditProfilePage) back() (tea.Model, tea.Cmd) {
	if m.prev == nil {
		return InitialHomeModel(m.app), nil
	}
	return m.prev, nil
}

func SaveProfileMsg(app *App, p api.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		u, err := app.Api.UpdateProfile(app.ctx(), app.token(), p)
		if err != nil {
			return profileSavedMsg{err: err}
		}
		// la respuesta puede venir incompleta; se vuelve a pedir el usuario
		if err := app.Session.RefreshMe(app.ctx()); err != nil {
			logging.Warn("no se pudo refrescar el usuario", "err", err)
			if u.Id != 0 {
				app.Session.SetUser(u)
			}
		}
		if me, ok := app.Session.User(); ok {
			u = me
		}
		return profileSavedMsg{user: u}
	}
}

func (m EditProfilePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.back()
		case "ctrl+c":
			return m, tea.Quit
		case "down", "tab":
			m.setFocus(m.focus + 1)
			return m, nil
		case "up", "shift+tab":
			m.setFocus(m.focus - 1)
			return m, nil
		case " ", "enter":
			if m.focus == epPrivate {
				m.private = !m.private
				return m, nil
			}
		case "ctrl+s":
			if m.sending {
				return m, nil
			}
			if !m.app.Session.LoggedIn() {
				cmd := m.status.fail(auth.ErrNotLoggedIn)
				return m, cmd
			}
			p := api.ProfileUpdate{
				Name:       strings.TrimSpace(m.inputs[epName].Value()),
				Bio:        strings.TrimSpace(m.inputs[epBio].Value()),
				Website:    state.NormalizeWebsite(m.inputs[epWebsite].Value()),
				Private:    m.private,
				AvatarPath: strings.TrimSpace(m.inputs[epAvatar].Value()),
			}
			if err := state.ValidateProfile(p.Name, p.Bio); err != nil {
				cmd := m.status.fail(err)
				return m, cmd
			}
			m.sending = true
			return m, SaveProfileMsg(m.app, p)
		}
	case profileSavedMsg:
		m.sending = false
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		if m.prev == nil {
			home := InitialHomeModel(m.app)
			cmd := home.status.set("Profile updated")
			return home, cmd
		}
		// el perfil anterior se actualiza con el mismo mensaje
		return m.prev.Update(msg)
	case message.ResetMsg:
		m.status.expire(msg)
		return m, nil
	case likeRevertedMsg, followRevertedMsg, readRevertedMsg:
		m.prev = forwardRevert(m.prev, msg)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus < len(m.inputs) {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m EditProfilePage) View() string {
	s := titleStyle.Render("Edit profile") + "\n\n"

	for i, in := range m.inputs {
		s += in.View() + "\n"
		if i == epBio {
			s += dimStyle.Render(fmt.Sprintf("  %d/%d", len([]rune(in.Value())), state.MaxBio)) + "\n"
		}
	}

	box := checkbox(m.private) + " Private account"
	if m.focus == epPrivate {
		box = cursorStyle.Render(box)
	}
	s += box + "\n\n"

	if m.sending {
		s += "Saving...\n"
	}
	s += m.status.View()
	s += "tab next field · space toggle · ctrl+s save · esc cancel\n"
	return s
}
