package mvc

import (
	"fmt"
	"strings"

	"social/client/api"
	"social/client/message"
	"social/client/state"
	"social/util/model"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	commentsPerReq = 20
	commentsShown  = 5
)

type postMsg struct {
	post model.Post
	err  error
}

type commentsPageMsg struct {
	req  state.Request
	page api.Page[model.Comment]
	err  error
}

type commentCreatedMsg struct {
	comment model.Comment
	err     error
}

type commentDeletedMsg struct {
	id  int64
	err error
}

type PostPage struct {
	postId   int64
	post     model.Post
	loaded   bool
	comments *state.Pager[int64, model.Comment]
	cursor   int
	textbox  textarea.Model
	writing  bool
	sending  bool
	confirm  int64 // comentario pendiente de confirmar borrado
	status   status

	prev tea.Model
	app  *App
}

// InitialPostPageModel abre el post id. Si se tiene ya una copia se muestra
// mientras llega la actual. prev es la pantalla a la que se vuelve
func InitialPostPageModel(app *App, id int64, initial *model.Post, prev tea.Model) PostPage {
	m := PostPage{
		app:      app,
		postId:   id,
		prev:     prev,
		comments: state.NewPager(commentsPerReq, func(c model.Comment) int64 { return c.Id }),
	}
	if initial != nil {
		m.post = *initial
		m.loaded = true
	}

	m.textbox = textarea.New()
	m.textbox.Placeholder = "Add a comment..."
	m.textbox.Prompt = "┃ "
	m.textbox.CharLimit = state.MaxComment
	m.textbox.ShowLineNumbers = false
	m.textbox.SetHeight(3)
	m.textbox.SetWidth(maxLineLen + 4)
	m.textbox.FocusedStyle.CursorLine = lipgloss.NewStyle()

	return m
}

func GetPostMsg(app *App, id int64) tea.Cmd {
	return func() tea.Msg {
		post, err := app.Api.Post(app.ctx(), app.token(), id)
		return postMsg{post: post, err: err}
	}
}

func GetCommentsMsg(app *App, postId int64, req state.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := app.Api.Comments(app.ctx(), app.token(), postId, req.Page)
		return commentsPageMsg{req: req, page: page, err: err}
	}
}

func (m PostPage) Init() tea.Cmd {
	return tea.Batch(GetPostMsg(m.app, m.postId), GetCommentsMsg(m.app, m.postId, m.comments.Reset()))
}

func (m PostPage) back() (tea.Model, tea.Cmd) {
	if m.prev == nil {
		return InitialHomeModel(m.app), nil
	}
	post := m.post
	return m.prev, func() tea.Msg { return postUpdatedMsg{post: post} }
}

func (m PostPage) selected() (model.Comment, bool) {
	items := m.comments.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Comment{}, false
	}
	return items[m.cursor], true
}

func (m PostPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.writing {
		return m.updateWriting(key)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm != 0 {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "esc", "left":
			return m.back()
		case "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.comments.Len()-1 {
				m.cursor++
			}
			if m.cursor >= m.comments.Len()-1 {
				if req, ok := m.comments.Next(); ok {
					return m, GetCommentsMsg(m.app, m.postId, req)
				}
			}
		case "ctrl+r":
			m.cursor = 0
			return m, tea.Batch(GetPostMsg(m.app, m.postId), GetCommentsMsg(m.app, m.postId, m.comments.Reset()))
		case "l":
			if !m.loaded {
				break
			}
			next, cmd, ok := m.app.toggleLike(m.post)
			if ok {
				m.post = next
				return m, cmd
			}
		case "c", "tab":
			m.writing = true
			return m, m.textbox.Focus()
		case "d":
			c, ok := m.selected()
			if !ok {
				break
			}
			if c.User.Id != m.app.myId() {
				cmd := m.status.set("You can only delete your own comments")
				return m, cmd
			}
			m.confirm = c.Id
		case "u":
			if m.loaded {
				page := InitialUserPageModel(m.app, m.post.User.Username, m)
				return page, page.Init()
			}
		}
	case postMsg:
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		// un like en vuelo manda sobre la copia del servidor
		m.post = m.app.overlayPost(msg.post)
		m.loaded = true
	case commentsPageMsg:
		if msg.err != nil {
			m.comments.Fail(msg.req)
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		if m.comments.Receive(msg.req, msg.page.Items, msg.page.Meta) && m.cursor >= m.comments.Len() {
			m.cursor = max(m.comments.Len()-1, 0)
		}
	case likeRevertedMsg:
		if msg.post.Id == m.post.Id {
			m.post = msg.post
		}
		m.prev = forwardRevert(m.prev, msg)
	case followRevertedMsg, readRevertedMsg:
		m.prev = forwardRevert(m.prev, msg)
	case commentCreatedMsg:
		m.sending = false
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		m.comments.Prepend(msg.comment)
		m.post = state.AdjustComments(m.post, 1)
		m.cursor = 0
		m.textbox.Reset()
		cmd := m.status.set("Comment posted")
		return m, cmd
	case commentDeletedMsg:
		if msg.err != nil {
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		if m.comments.Remove(msg.id) {
			m.post = state.AdjustComments(m.post, -1)
		}
		if m.cursor >= m.comments.Len() {
			m.cursor = max(m.comments.Len()-1, 0)
		}
		cmd := m.status.set("Comment deleted")
		return m, cmd
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, nil
}

func (m PostPage) updateWriting(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "tab":
		m.writing = false
		m.textbox.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		body := strings.TrimSpace(m.textbox.Value())
		if body == "" || m.sending {
			return m, nil
		}
		m.sending = true
		app, id := m.app, m.postId
		return m, func() tea.Msg {
			c, err := app.Api.CreateComment(app.ctx(), app.token(), id, body)
			return commentCreatedMsg{comment: c, err: err}
		}
	}
	var cmd tea.Cmd
	m.textbox, cmd = m.textbox.Update(key)
	return m, cmd
}

func (m PostPage) updateConfirm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirm
	m.confirm = 0
	switch key.String() {
	case "y", "Y":
		app := m.app
		return m, func() tea.Msg {
			return commentDeletedMsg{id: id, err: app.Api.DeleteComment(app.ctx(), app.token(), id)}
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m PostPage) View() string {
	s := titleStyle.Render("Post") + "\n\n"

	if !m.loaded {
		s += "Loading...\n\n" + m.status.View()
		return s
	}

	s += InitialPost(m.post, m.app.Now()).Full().View() + "\n"

	s += "_________________________\n"
	items := m.comments.Items()
	if len(items) == 0 {
		if m.comments.Loading() {
			s += dimStyle.Render("Loading comments...") + "\n"
		} else {
			s += dimStyle.Render("No comments yet") + "\n"
		}
	}

	now := m.app.Now()
	start, end := listWindow(m.cursor, len(items), commentsShown)
	for i := start; i < end; i++ {
		if i == m.cursor && !m.writing {
			s += cursorStyle.Render(">") + " "
		} else {
			s += "  "
		}
		s += renderComment(items[i], now)
	}
	if m.comments.HasMore() && len(items) > 0 {
		s += dimStyle.Render("↓ more comments") + "\n"
	}
	s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n"

	if m.writing {
		s += m.textbox.View() + "\n"
		s += dimStyle.Render(fmt.Sprintf("%d/%d", len([]rune(m.textbox.Value())), state.MaxComment)) + "\n"
	}

	if m.confirm != 0 {
		s += errorStyle.Render("Delete this comment? (y/n)") + "\n"
	}
	if m.sending {
		s += "Posting...\n"
	}
	s += m.status.View()

	if m.writing {
		s += "ctrl+s send · esc stop writing\n"
	} else {
		s += "l like · c comment · d delete · u author · ctrl+r refresh · esc back\n"
	}
	return s
}
