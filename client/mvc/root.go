package mvc

import (
	"social/client/message"

	tea "github.com/charmbracelet/bubbletea"
)

/*
Root envuelve la pantalla activa. Las respuestas de like, follow y marcar como
leída se resuelven aquí contra los ledgers de App, sea cual sea la pantalla
que esté delante cuando llegan. Si la petición falló, la pantalla activa recibe
el *RevertedMsg con el valor previo y el error se muestra en la línea de Root.
*/
type Root struct {
	screen tea.Model
	status status

	app *App
}

func InitialRootModel(app *App) Root {
	return Root{app: app, screen: InitialHomeModel(app)}
}

func (r Root) Init() tea.Cmd {
	return r.screen.Init()
}

// Screen es la pantalla activa
func (r Root) Screen() tea.Model {
	return r.screen
}

func (r Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case likeDoneMsg:
		prior, revert := r.app.likes.Settle(msg.postId, msg.err)
		if !revert {
			return r, nil
		}
		return r.revert(likeRevertedMsg{post: prior}, msg.err)
	case followDoneMsg:
		prior, revert := r.app.follows.Settle(msg.userId, msg.err)
		if !revert {
			return r, nil
		}
		return r.revert(followRevertedMsg{user: prior}, msg.err)
	case markReadDoneMsg:
		prior, revert := r.app.reads.Settle(msg.id, msg.err)
		if !revert {
			return r, nil
		}
		return r.revert(readRevertedMsg{id: msg.id, read: prior}, msg.err)
	case message.ResetMsg:
		r.status.expire(msg)
	}
	return r.forward(msg)
}

func (r Root) revert(msg tea.Msg, err error) (tea.Model, tea.Cmd) {
	failCmd := r.status.fail(err)
	next, cmd := r.forward(msg)
	return next, tea.Batch(cmd, failCmd)
}

func (r Root) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	r.screen, cmd = r.screen.Update(msg)
	return r, cmd
}

func (r Root) View() string {
	return r.screen.View() + r.status.View()
}
