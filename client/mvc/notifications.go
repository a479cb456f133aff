package mvc

import (
	"time"

	"social/client/api"
	"social/client/message"
	"social/client/state"
	"social/util/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	notificationsPerReq = 20
	notificationsShown  = 10
)

type notificationsPageMsg struct {
	req  state.Request
	page api.Page[model.Notification]
	err  error
}

// NotificationsPage lista las notificaciones agrupadas por fecha. El backend no
// manda meta, así que una página llena indica que puede haber más
type NotificationsPage struct {
	list   *state.Pager[int64, model.Notification]
	cursor int
	status status

	app *App
}

func InitialNotificationsModel(app *App) NotificationsPage {
	return NotificationsPage{
		app:  app,
		list: state.NewPager(notificationsPerReq, func(n model.Notification) int64 { return n.Id }),
	}
}

func GetNotificationsMsg(app *App, req state.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := app.Api.Notifications(app.ctx(), app.token(), req.Page)
		return notificationsPageMsg{req: req, page: page, err: err}
	}
}

func (m NotificationsPage) Init() tea.Cmd {
	return GetNotificationsMsg(m.app, m.list.Reset())
}

// ordered devuelve las notificaciones en el orden en que se pintan
func (m NotificationsPage) ordered() ([]state.Group, []model.Notification) {
	groups := state.GroupByTime(m.list.Items(), m.app.Now())
	flat := make([]model.Notification, 0, m.list.Len())
	for _, g := range groups {
		flat = append(flat, g.Items...)
	}
	return groups, flat
}

func (m NotificationsPage) selected() (model.Notification, bool) {
	_, flat := m.ordered()
	if m.cursor < 0 || m.cursor >= len(flat) {
		return model.Notification{}, false
	}
	return flat[m.cursor], true
}

// markRead marca n como leída de forma optimista
func (m *NotificationsPage) markRead(n model.Notification) tea.Cmd {
	cmd := m.app.markRead(n)
	if cmd != nil {
		m.list.SetItems(state.SetRead(m.list.Items(), n.Id, true))
	}
	return cmd
}

func (m NotificationsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < m.list.Len()-1 {
				m.cursor++
			}
			if m.cursor >= m.list.Len()-1 {
				if req, ok := m.list.Next(); ok {
					return m, GetNotificationsMsg(m.app, req)
				}
			}
		case "ctrl+r":
			m.cursor = 0
			return m, GetNotificationsMsg(m.app, m.list.Reset())
		case "r":
			if n, ok := m.selected(); ok {
				return m, m.markRead(n)
			}
		case "enter", "right":
			n, ok := m.selected()
			if !ok {
				break
			}
			cmd := m.markRead(n)
			target := state.TargetOf(n)
			switch {
			case target.PostId != 0:
				page := InitialPostPageModel(m.app, target.PostId, nil, m)
				return page, tea.Batch(cmd, page.Init())
			case target.Username != "":
				page := InitialUserPageModel(m.app, target.Username, m)
				return page, tea.Batch(cmd, page.Init())
			}
			return m, cmd
		}
	case notificationsPageMsg:
		if msg.err != nil {
			m.list.Fail(msg.req)
			cmd := m.status.fail(msg.err)
			return m, cmd
		}
		items := msg.page.Items
		for i := range items {
			if m.app.reads.InFlight(items[i].Id) {
				items[i].Read = true
			}
		}
		if m.list.Receive(msg.req, items, msg.page.Meta) && m.cursor >= m.list.Len() {
			m.cursor = max(m.list.Len()-1, 0)
		}
	case readRevertedMsg:
		m.list.SetItems(state.SetRead(m.list.Items(), msg.id, msg.read))
	case message.ResetMsg:
		m.status.expire(msg)
	}
	return m, nil
}

func (m NotificationsPage) View() string {
	s := titleStyle.Render("Notifications") + "\n\n"

	groups, _ := m.ordered()
	if len(groups) == 0 {
		if m.list.Loading() {
			s += "Loading...\n"
		} else {
			s += dimStyle.Render("No notifications yet") + "\n"
		}
	}

	now := m.app.Now()
	start, end := listWindow(m.cursor, m.list.Len(), notificationsShown)
	i := 0
	for _, g := range groups {
		header := false
		for _, n := range g.Items {
			if i >= start && i < end {
				if !header {
					s += "\n" + titleStyle.Render(g.Title) + "\n"
					header = true
				}
				s += m.renderNotification(n, i == m.cursor, now)
			}
			i++
		}
	}

	if m.list.Loading() && m.list.Len() > 0 {
		s += dimStyle.Render("loading more...") + "\n"
	}

	s += "\n" + m.status.View()
	s += "enter open · r mark read · ctrl+r refresh · esc back\n"
	return s
}

func (m NotificationsPage) renderNotification(n model.Notification, selected bool, now time.Time) string {
	kind := state.KindOf(n)
	glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(kind.Color())).Render(kind.Glyph())

	who := "@" + n.Actor.Username
	if selected {
		who = cursorStyle.Render(who)
	} else {
		who = userStyle.Render(who)
	}

	line := glyph + " " + who + " " + n.Action
	line += dimStyle.Render(" · " + state.TimeAgo(n.CreatedAt, now))
	if !n.Read {
		line += " " + unreadStyle.Render("●")
	}
	return line + "\n"
}
