package mvc

import (
	"fmt"

	"social/client/api"
	"social/client/auth"
	"social/client/message"
	"social/client/state"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type postCreatedMsg struct {
	id  int64
	err error
}

const (
	npCaption = iota
	npLocation
	npImages
)

type NewPostPage struct {
	caption  textarea.Model
	location textinput.Model
	images   textinput.Model
	focus    int
	sending  bool
	status   status

	app *App
}

func InitialNewPostModel(app *App) NewPostPage {
	m := NewPostPage{app: app}

	m.caption = textarea.New()
	m.caption.Placeholder = "Write a caption... (#tags welcome)"
	m.caption.Prompt = "┃ "
	m.caption.CharLimit = state.MaxCaption
	m.caption.ShowLineNumbers = false
	m.caption.SetHeight(5)
	m.caption.SetWidth(maxLineLen + 4)
	m.caption.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.caption.Focus()

	m.location = textinput.New()
	m.location.Placeholder = "Location (optional)"

	m.images = textinput.New()
	m.images.Placeholder = "Image paths, separated by commas"
	m.images.CharLimit = 4096

	return m
}

func (m NewPostPage) Init() tea.Cmd {
	return textarea.Blink
}

func (m *NewPostPage) setFocus(i int) tea.Cmd {
	m.caption.Blur()
	m.location.Blur()
	m.images.Blur()
	m.focus = (i + 3) % 3
	switch m.focus {
	case npCaption:
		return m.caption.Focus()
	case npLocation:
		return m.location.Focus()
	}
	return m.images.Focus()
}

func (m NewPostPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return InitialHomeModel(m.app), nil
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+s":
			if m.sending {
				return m, nil
			}
			if !m.app.Session.LoggedIn() {
				cmd := m.status.fail(auth.ErrNotLoggedIn)
				return m, cmd
			}
			post := api.NewPost{
				Caption:    m.caption.Value(),
				Location:   m.location.Value(),
				ImagePaths: state.SplitPaths(m.images.Value()),
			}
			if err := state.ValidatePost(post.Caption, post.ImagePaths); err != nil {
				cmd := m.status.fail(err)
				return m, cmd
			}
			m.sending = true
			app := m.app
			return m, func() tea.Msg {
				created, err := app.Api.CreatePost(app.ctx(), app.token(), post)
				return postCreatedMsg{id: created.Id, err: err}
			}
		}
	case postCreatedMsg:
		m.sending = false
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		page := InitialPostPageModel(m.app, msg.id, nil, nil)
		cmd := page.status.set("Posted!")
		return page, tea.Batch(page.Init(), cmd)
	case message.ResetMsg:
		m.status.expire(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case npCaption:
		m.caption, cmd = m.caption.Update(msg)
	case npLocation:
		m.location, cmd = m.location.Update(msg)
	case npImages:
		m.images, cmd = m.images.Update(msg)
	}
	return m, cmd
}

func (m NewPostPage) View() string {
	s := titleStyle.Render("New post") + "\n\n"

	s += m.caption.View() + "\n"
	s += dimStyle.Render(fmt.Sprintf("%d/%d", len([]rune(m.caption.Value())), state.MaxCaption)) + "\n\n"
	s += m.location.View() + "\n"
	s += m.images.View() + "\n"

	n := len(state.SplitPaths(m.images.Value()))
	s += dimStyle.Render(fmt.Sprintf("%d/%d photos", n, state.MaxPostImages)) + "\n\n"

	if m.sending {
		s += "Uploading...\n"
	}
	s += m.status.View()
	s += "tab next field · ctrl+s publish · esc cancel\n"
	return s
}
