// Package state contiene la lógica de reconciliación de estado local de las
// pantallas: cambios optimistas, paginación, búsqueda con debounce y agrupado.
package state

import (
	"social/util/model"
)

// Ledger recuerda el valor previo de cada cambio optimista en vuelo.
// Un segundo cambio sobre la misma clave se rechaza hasta que el primero termina.
// No es seguro para uso concurrente; se usa desde el bucle de Update.
type Ledger[K comparable, V any] struct {
	pending map[K]V
}

func NewLedger[K comparable, V any]() *Ledger[K, V] {
	return &Ledger[K, V]{pending: make(map[K]V)}
}

// Begin registra prior como estado a restaurar. Devuelve false si ya hay un
// cambio en vuelo para key
func (l *Ledger[K, V]) Begin(key K, prior V) bool {
	if _, ok := l.pending[key]; ok {
		return false
	}
	l.pending[key] = prior
	return true
}

func (l *Ledger[K, V]) InFlight(key K) bool {
	_, ok := l.pending[key]
	return ok
}

// Prior devuelve el valor guardado para key mientras el cambio está en vuelo
func (l *Ledger[K, V]) Prior(key K) (V, bool) {
	prior, ok := l.pending[key]
	return prior, ok
}

// Settle cierra el cambio. Si err no es nil devuelve el valor previo y true
func (l *Ledger[K, V]) Settle(key K, err error) (V, bool) {
	prior, ok := l.pending[key]
	delete(l.pending, key)
	if !ok || err == nil {
		var zero V
		return zero, false
	}
	return prior, true
}

func (l *Ledger[K, V]) Len() int {
	return len(l.pending)
}

// ToggleFollow invierte is_following y ajusta followers_count sin bajar de 0
func ToggleFollow(u model.User) model.User {
	if u.IsFollowing {
		u.IsFollowing = false
		u.FollowersCount = max(0, u.FollowersCount-1)
	} else {
		u.IsFollowing = true
		u.FollowersCount++
	}
	return u
}

// ToggleLike invierte liked_by_me y ajusta like_count sin bajar de 0
func ToggleLike(p model.Post) model.Post {
	if p.LikedByMe {
		p.LikedByMe = false
		p.LikeCount = max(0, p.LikeCount-1)
	} else {
		p.LikedByMe = true
		p.LikeCount++
	}
	return p
}

// SetRead devuelve una copia de list con la notificación id marcada como read
func SetRead(list []model.Notification, id int64, read bool) []model.Notification {
	out := make([]model.Notification, len(list))
	copy(out, list)
	for i := range out {
		if out[i].Id == id {
			out[i].Read = read
		}
	}
	return out
}

// AdjustComments suma delta a comment_count sin bajar de 0
func AdjustComments(p model.Post, delta int) model.Post {
	p.CommentCount = max(0, p.CommentCount+delta)
	return p
}
