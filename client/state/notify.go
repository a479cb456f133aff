package state

import (
	"strings"

	"social/util/model"
)

type ActionKind int

const (
	ActionOther ActionKind = iota
	ActionLiked
	ActionCommented
	ActionFollowed
	ActionMentioned
)

func KindOf(n model.Notification) ActionKind {
	switch {
	case strings.Contains(n.Action, "liked"):
		return ActionLiked
	case strings.Contains(n.Action, "commented"):
		return ActionCommented
	case strings.Contains(n.Action, "followed"):
		return ActionFollowed
	case strings.Contains(n.Action, "mentioned"):
		return ActionMentioned
	}
	return ActionOther
}

func (k ActionKind) Glyph() string {
	switch k {
	case ActionLiked:
		return "♥"
	case ActionCommented:
		return "✎"
	case ActionFollowed:
		return "+"
	case ActionMentioned:
		return "@"
	}
	return "•"
}

func (k ActionKind) Color() string {
	switch k {
	case ActionLiked:
		return "#FF3040"
	case ActionCommented:
		return "#0095F6"
	case ActionFollowed:
		return "#00C896"
	case ActionMentioned:
		return "#FFCD00"
	}
	return "#8E8E8E"
}

// Target es a donde lleva pulsar una notificación. Si PostId es 0 y Username
// está vacío no hay destino
type Target struct {
	PostId   int64
	Username string
}

func TargetOf(n model.Notification) Target {
	switch n.NotifiableType {
	case "Post":
		return Target{PostId: n.NotifiableId}
	case "Comment":
		if n.NotifiableData != nil {
			return Target{PostId: n.NotifiableData.Id}
		}
		return Target{}
	}
	if strings.Contains(n.Action, "followed") {
		return Target{Username: n.Actor.Username}
	}
	return Target{}
}
