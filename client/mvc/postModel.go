package mvc

import (
	"fmt"
	"strings"
	"time"

	"social/client/state"
	"social/client/terminal"
	"social/util/model"

	"github.com/charmbracelet/lipgloss"
)

const maxLineLen = 60

// PostView pinta una publicación. Full incluye pie de foto completo y etiquetas
type PostView struct {
	post model.Post
	now  time.Time
	full bool

	userStyle lipgloss.Style
	tagStyle  lipgloss.Style
}

func InitialPost(post model.Post, now time.Time) PostView {
	return PostView{
		post:      post,
		now:       now,
		userStyle: userStyle,
		tagStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#45f")),
	}
}

func (m PostView) Full() PostView {
	m.full = true
	return m
}

func (m PostView) View() string {
	p := m.post
	s := "@" + m.userStyle.Render(p.User.Username)
	if p.Location != "" {
		s += dimStyle.Render(" · " + p.Location)
	}
	s += dimStyle.Render(" · "+state.PostAge(p.CreatedAt, m.now)) + "\n"

	switch n := len(p.ImageUrls); n {
	case 0:
	case 1:
		s += dimStyle.Render("[1 photo]") + "\n"
	default:
		s += dimStyle.Render(fmt.Sprintf("[%d photos]", n)) + "\n"
	}

	caption := p.Caption
	if !m.full {
		caption = terminal.Truncate(strings.ReplaceAll(caption, "\n", " "), maxLineLen*2)
	}
	if caption != "" {
		s += terminal.Wrap(caption, maxLineLen) + "\n"
	}

	if m.full && len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "#" + t
		}
		s += m.tagStyle.Render(strings.Join(tags, " ")) + "\n"
	}

	heart := "♡"
	if p.LikedByMe {
		heart = likeStyle.Render("♥")
	}
	s += fmt.Sprintf("%s %d   ✎ %d\n", heart, p.LikeCount, p.CommentCount)

	return s
}

func renderComment(c model.Comment, now time.Time) string {
	s := "@" + userStyle.Render(c.User.Username) + dimStyle.Render(" · "+state.TimeAgo(c.CreatedAt, now)) + "\n"
	s += terminal.Wrap(c.Body, maxLineLen) + "\n"
	return s
}

// listWindow devuelve el rango [start, end) de size elementos alrededor de cursor
func listWindow(cursor, n, size int) (int, int) {
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = end - size
		if start < 0 {
			start = 0
		}
	}
	return start, end
}
