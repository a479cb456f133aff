package mvc

import (
	"fmt"

	"social/client/api"
	"social/client/message"
	"social/client/state"
	"social/util/model"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	postsPerReq = 10
	postsShown  = 3
)

type postsPageMsg struct {
	req  state.Request
	page api.Page[model.Post]
	err  error
}

/*
Los posts se acumulan en el pager. Cada petición lleva su (generación, página):
si se refresca mientras llega una página antigua, esa respuesta se descarta, y
una página ya cargada no se vuelve a añadir. Los posts repetidos (por ejemplo
si se publicó algo entre dos páginas) se saltan por id.
*/

type FeedPage struct {
	posts  *state.Pager[int64, model.Post]
	cursor int
	status status

	app *App
}

func InitialFeedModel(app *App) FeedPage {
	return FeedPage{
		app:   app,
		posts: state.NewPager(postsPerReq, func(p model.Post) int64 { return p.Id }),
	}
}

func GetPostsMsg(app *App, req state.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := app.Api.Feed(app.ctx(), app.token(), req.Page)
		return postsPageMsg{req: req, page: page, err: err}
	}
}

// Init carga la primera página
func (m FeedPage) Init() tea.Cmd {
	return GetPostsMsg(m.app, m.posts.Reset())
}

func (m FeedPage) selected() (model.Post, bool) {
	items := m.posts.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Post{}, false
	}
	return items[m.cursor], true
}

func (m FeedPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "left":
			return InitialHomeModel(m.app), nil
		case "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.posts.Len()-1 {
				m.cursor++
			}
			if m.cursor >= m.posts.Len()-1 {
				if req, ok := m.posts.Next(); ok {
					return m, GetPostsMsg(m.app, req)
				}
			}
		case "ctrl+r":
			m.cursor = 0
			return m, GetPostsMsg(m.app, m.posts.Reset())
		case "l":
			p, ok := m.selected()
			if !ok {
				break
			}
			next, cmd, ok := m.app.toggleLike(p)
			if !ok {
				break
			}
			m.posts.Replace(next)
			return m, cmd
		case "enter", "right":
			if p, ok := m.selected(); ok {
				page := InitialPostPageModel(m.app, p.Id, &p, m)
				return page, page.Init()
			}
		case "u":
			if p, ok := m.selected(); ok {
				page := InitialUserPageModel(m.app, p.User.Username, m)
				return page, page.Init()
			}
		case "n":
			return InitialNewPostModel(m.app), nil
		}
	case postsPageMsg:
		if msg.err != nil {
			m.posts.Fail(msg.req)
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		if !m.posts.Receive(msg.req, m.app.overlayPosts(msg.page.Items), msg.page.Meta) {
			break
		}
		if m.cursor >= m.posts.Len() {
			m.cursor = max(m.posts.Len()-1, 0)
		}
		if !m.posts.HasMore() && msg.req.Page > 1 {
			cmd := m.status.set("No more posts")
			return m, cmd
		}
	case likeRevertedMsg:
		m.posts.Replace(msg.post)
	case postUpdatedMsg:
		m.posts.Replace(msg.post)
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, nil
}

func (m FeedPage) View() string {
	s := titleStyle.Render("Feed") + "\n\n"

	items := m.posts.Items()
	switch {
	case len(items) == 0 && m.posts.Loading():
		s += "Loading...\n"
	case len(items) == 0:
		s += "No posts yet. Press 'n' to share the first one.\n"
	}

	start, end := listWindow(m.cursor, len(items), postsShown)
	now := m.app.Now()
	for i := start; i < end; i++ {
		view := InitialPost(items[i], now).View()
		if i == m.cursor {
			s += cursorStyle.Render(">") + " "
		} else {
			s += "  "
		}
		s += view + "\n"
	}

	if len(items) > 0 {
		s += dimStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(items)))
		if m.posts.Loading() {
			s += dimStyle.Render(" · loading more...")
		}
		s += "\n"
	}

	s += "\n" + m.status.View()
	s += "l like · enter open · u author · n new post · ctrl+r refresh · esc back\n"
	return s
}
