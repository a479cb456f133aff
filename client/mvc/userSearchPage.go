package mvc

import (
	"fmt"

	"social/client/api"
	"social/client/message"
	"social/client/state"
	"social/util/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	usersPerReq = 20
	listSize    = 8
)

type usersPageMsg struct {
	req   state.Request
	query string
	page  api.Page[model.User]
	err   error
}

/*
Cada pulsación que cambia la búsqueda programa un SearchSettledMsg con su marca.
Solo la marca más reciente se resuelve, así que una ráfaga de teclas produce una
única petición. La lista de resultados usa el pager: una búsqueda nueva es un
Reset y las respuestas de búsquedas anteriores se descartan.
*/

type UserSearchPage struct {
	users        *state.Pager[int64, model.User]
	debounce     *state.Debounce
	searchBar    textinput.Model
	selectedUser int
	onSearchBtn  bool
	searched     string
	status       status

	app *App
}

func InitialUserSearchPageModel(app *App) UserSearchPage {
	m := UserSearchPage{app: app}

	m.users = state.NewPager(usersPerReq, func(u model.User) int64 { return u.Id })
	m.debounce = state.NewDebounce(state.SearchDelay)

	m.searchBar = textinput.New()
	m.searchBar.Placeholder = "Search user..."
	m.searchBar.Focus()
	m.onSearchBtn = true
	m.selectedUser = -1

	return m
}

func SearchUsersMsg(app *App, query string, req state.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := app.Api.SearchUsers(app.ctx(), app.token(), query, req.Page)
		return usersPageMsg{req: req, query: query, page: page, err: err}
	}
}

// Init lista todos los usuarios (búsqueda vacía)
func (m UserSearchPage) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, SearchUsersMsg(m.app, "", m.users.Reset()))
}

func (m UserSearchPage) selected() (model.User, bool) {
	items := m.users.Items()
	if m.selectedUser < 0 || m.selectedUser >= len(items) {
		return model.User{}, false
	}
	return items[m.selectedUser], true
}

func (m UserSearchPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 3)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return InitialHomeModel(m.app), nil
		case "ctrl+c":
			return m, tea.Quit
		case "down":
			n := m.users.Len()
			if m.selectedUser < n-1 {
				m.selectedUser++
			}
			if m.selectedUser != -1 {
				m.onSearchBtn = false
				m.searchBar.Blur()
			}
			if m.selectedUser >= n-1 {
				if req, ok := m.users.Next(); ok {
					cmds = append(cmds, SearchUsersMsg(m.app, m.searched, req))
				}
			}
			return m, tea.Batch(cmds...)
		case "up":
			if m.selectedUser >= 0 {
				m.selectedUser--
			}
			if m.selectedUser == -1 {
				m.onSearchBtn = true
				cmds = append(cmds, m.searchBar.Focus())
			}
			return m, tea.Batch(cmds...)
		case "enter":
			if m.onSearchBtn {
				// búsqueda inmediata, sin esperar
				m.debounce.Cancel()
				m.searched = m.searchBar.Value()
				m.selectedUser = -1
				return m, SearchUsersMsg(m.app, m.searched, m.users.Reset())
			}
			if u, ok := m.selected(); ok {
				page := InitialUserPageModel(m.app, u.Username, m)
				return page, page.Init()
			}
			return m, nil
		case "ctrl+f":
			u, ok := m.selected()
			if !ok || u.Id == m.app.myId() {
				return m, nil
			}
			next, cmd, ok := m.app.toggleFollow(u)
			if ok {
				m.users.Replace(next)
			}
			return m, cmd
		case "ctrl+r":
			m.selectedUser = -1
			return m, SearchUsersMsg(m.app, m.searched, m.users.Reset())
		}

		if m.onSearchBtn {
			before := m.searchBar.Value()
			var cmd tea.Cmd
			m.searchBar, cmd = m.searchBar.Update(msg)
			cmds = append(cmds, cmd)
			if v := m.searchBar.Value(); v != before {
				tag := m.debounce.Type(v)
				cmds = append(cmds, message.Debounced(tag, m.debounce.Delay))
			}
		}
		return m, tea.Batch(cmds...)
	case message.SearchSettledMsg:
		if q, ok := m.debounce.Settled(msg.Tag); ok {
			m.searched = q
			m.selectedUser = -1
			return m, SearchUsersMsg(m.app, q, m.users.Reset())
		}
	case usersPageMsg:
		if msg.err != nil {
			m.users.Fail(msg.req)
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		if !m.users.Receive(msg.req, m.app.overlayUsers(msg.page.Items), msg.page.Meta) {
			break
		}
		if m.selectedUser >= m.users.Len() {
			m.selectedUser = m.users.Len() - 1
		}
		if !m.users.HasMore() && msg.req.Page > 1 {
			cmd := m.status.set("Reached end of user list")
			return m, cmd
		}
	case followRevertedMsg:
		m.users.Replace(msg.user)
	case userUpdatedMsg:
		m.users.Replace(msg.user)
	case message.ResetMsg:
		m.status.expire(msg)
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	return m, cmd
}

func (m UserSearchPage) View() string {
	var s string

	s = titleStyle.Render("User search") + "\n\n"

	s += m.searchBar.View()

	items := m.users.Items()
	start, end := listWindow(max(m.selectedUser, 0), len(items), listSize)

	s += "\n_________________________\n"
	if len(items) == 0 {
		if m.users.Loading() {
			s += "Searching...\n"
		} else {
			s += dimStyle.Render("No users found") + "\n"
		}
	}
	me := m.app.myId()
	for i := start; i < end; i++ {
		u := items[i]
		line := "@" + u.Username
		if u.Name != "" {
			line += " " + dimStyle.Render(u.Name)
		}
		if u.Id != me {
			if u.IsFollowing {
				line += "  " + unreadStyle.Render("following")
			} else if u.FollowsMe {
				line += "  " + dimStyle.Render("follows you")
			}
		}
		if m.selectedUser == i {
			s += cursorStyle.Render("@"+u.Username) + line[len("@"+u.Username):] + "\n"
		} else {
			s += line + "\n"
		}
	}

	for i := end - start; i < listSize; i++ {
		s += "\n"
	}

	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n"
	if n := len(items); n > 0 {
		s += dimStyle.Render(fmt.Sprintf("%d users", n)) + "\n"
	}
	s += "\n" + m.status.View()
	s += "enter search/open · ctrl+f follow · ctrl+r refresh · esc back\n\n"

	return s
}
