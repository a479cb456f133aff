package mvc

import (
	"context"
	"errors"
	"net/url"
	"time"

	"social/client/api"
	"social/client/auth"
	"social/client/message"
	"social/client/state"
	"social/util/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App agrupa lo que necesitan todas las pantallas: el cliente REST y la sesión
type App struct {
	Api     *api.Client
	Session *auth.Session

	// cambios optimistas en vuelo, compartidos entre pantallas
	likes   *state.Ledger[int64, model.Post]
	follows *state.Ledger[int64, model.User]
	reads   *state.Ledger[int64, bool]

	now func() time.Time
}

func NewApp(client *api.Client, session *auth.Session) *App {
	return &App{
		Api:     client,
		Session: session,
		likes:   state.NewLedger[int64, model.Post](),
		follows: state.NewLedger[int64, model.User](),
		reads:   state.NewLedger[int64, bool](),
		now:     time.Now,
	}
}

func (a *App) Now() time.Time {
	return a.now()
}

func (a *App) token() string {
	return a.Session.Token()
}

// ctx es el contexto de las órdenes asíncronas. El cliente aplica su propio timeout
func (a *App) ctx() context.Context {
	return context.Background()
}

// myId es el id del usuario de la sesión, o 0
func (a *App) myId() int64 {
	u, ok := a.Session.User()
	if !ok {
		return 0
	}
	return u.Id
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FFF"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E8E8E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3040"))
	likeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3040"))
	unreadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0095F6"))
)

// status es la línea de información de cada pantalla. Se borra sola pasado
// StatusDelay, salvo que entretanto se haya escrito otra
type status struct {
	text string
	err  bool
	tag  uint64
}

func (s *status) set(text string) tea.Cmd {
	s.text = text
	s.err = false
	s.tag = message.NextResetTag()
	return message.SendTimedMessage(message.ResetMsg{Tag: s.tag}, message.StatusDelay)
}

func (s *status) fail(err error) tea.Cmd {
	cmd := s.set(errText(err))
	s.err = true
	return cmd
}

// expire borra la línea si msg es el temporizador del último set
func (s *status) expire(msg message.ResetMsg) {
	if msg.Tag != s.tag {
		return
	}
	s.text = ""
	s.err = false
}

func (s status) View() string {
	if s.text == "" {
		return ""
	}
	if s.err {
		return errorStyle.Render("Error: "+s.text) + "\n"
	}
	return "Info: " + s.text + "\n"
}

// errText da el mensaje a mostrar para un error. Los fallos de red se
// resumen en uno solo
func errText(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return "could not reach the server"
	}
	return err.Error()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// Los *DoneMsg los resuelve Root contra los ledgers de App. Si la petición
// falló, Root manda el *RevertedMsg correspondiente a la pantalla activa
type likeDoneMsg struct {
	postId int64
	err    error
}

type followDoneMsg struct {
	userId int64
	err    error
}

type markReadDoneMsg struct {
	id  int64
	err error
}

type likeRevertedMsg struct {
	post model.Post
}

type followRevertedMsg struct {
	user model.User
}

type readRevertedMsg struct {
	id   int64
	read bool
}

// postUpdatedMsg avisa a la pantalla anterior de que una publicación cambió
type postUpdatedMsg struct {
	post model.Post
}

// userUpdatedMsg es lo mismo para un usuario
type userUpdatedMsg struct {
	user model.User
}

// forwardRevert pasa un *RevertedMsg a la pantalla anterior, que también
// puede estar mostrando la entidad
func forwardRevert(prev tea.Model, msg tea.Msg) tea.Model {
	if prev == nil {
		return nil
	}
	switch msg.(type) {
	case likeRevertedMsg, followRevertedMsg, readRevertedMsg:
		prev, _ = prev.Update(msg)
	}
	return prev
}

// toggleLike aplica el like optimista a post. Devuelve el post cambiado y la
// orden que lo envía, o false si ya hay un cambio en vuelo para ese post
func (a *App) toggleLike(post model.Post) (model.Post, tea.Cmd, bool) {
	if !a.likes.Begin(post.Id, post) {
		return post, nil, false
	}
	next := state.ToggleLike(post)
	return next, func() tea.Msg {
		err := a.Api.SetLiked(a.ctx(), a.token(), next.Id, next.LikedByMe)
		return likeDoneMsg{postId: next.Id, err: err}
	}, true
}

// overlayPost aplica a una copia del servidor el like optimista en vuelo
func (a *App) overlayPost(p model.Post) model.Post {
	prior, ok := a.likes.Prior(p.Id)
	if ok && p.LikedByMe == prior.LikedByMe {
		return state.ToggleLike(p)
	}
	return p
}

func (a *App) overlayUser(u model.User) model.User {
	prior, ok := a.follows.Prior(u.Id)
	if ok && u.IsFollowing == prior.IsFollowing {
		return state.ToggleFollow(u)
	}
	return u
}

func (a *App) overlayPosts(list []model.Post) []model.Post {
	for i := range list {
		list[i] = a.overlayPost(list[i])
	}
	return list
}

func (a *App) overlayUsers(list []model.User) []model.User {
	for i := range list {
		list[i] = a.overlayUser(list[i])
	}
	return list
}

// markRead marca la notificación como leída de forma optimista. Devuelve nil
// si ya lo estaba o si hay otra marca en vuelo
func (a *App) markRead(n model.Notification) tea.Cmd {
	if n.Read || !a.reads.Begin(n.Id, n.Read) {
		return nil
	}
	return func() tea.Msg {
		return markReadDoneMsg{id: n.Id, err: a.Api.MarkNotificationRead(a.ctx(), a.token(), n.Id)}
	}
}

func (a *App) toggleFollow(user model.User) (model.User, tea.Cmd, bool) {
	if !a.follows.Begin(user.Id, user) {
		return user, nil, false
	}
	next := state.ToggleFollow(user)
	return next, func() tea.Msg {
		err := a.Api.SetFollowing(a.ctx(), a.token(), next.Id, next.IsFollowing)
		return followDoneMsg{userId: next.Id, err: err}
	}, true
}
