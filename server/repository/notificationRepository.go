package repository

import (
	"slices"

	"social/util/model"
)

// notify crea una notificación para user. Las acciones sobre uno mismo no se
// notifican. Requiere el cerrojo de escritura
func (db *Database) notify(user, actor int64, action, notifiableType string, notifiableId, postId int64) {
	if user == actor {
		return
	}
	n := &NotificationRecord{
		Id:             db.id(),
		UserId:         user,
		ActorId:        actor,
		Action:         action,
		NotifiableType: notifiableType,
		NotifiableId:   notifiableId,
		PostId:         postId,
		CreatedAt:      db.now(),
	}
	db.Notifications[n.Id] = n
	db.UserNotifications[user] = slices.Insert(db.UserNotifications[user], 0, n.Id)
}

func ListNotifications(db *Database, user int64, page, size int) ([]model.Notification, model.Meta, int) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	unread := 0
	for _, id := range db.UserNotifications[user] {
		if !db.Notifications[id].Read {
			unread++
		}
	}

	ids, meta := PageOf(db.UserNotifications[user], page, size)
	list := make([]model.Notification, len(ids))
	for i, id := range ids {
		list[i] = db.notificationView(id)
	}
	return list, meta, unread
}

func MarkNotificationRead(db *Database, user, id int64) (model.Notification, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	n, ok := db.Notifications[id]
	if !ok || n.UserId != user {
		return model.Notification{}, ErrNotFound
	}
	n.Read = true
	return db.notificationView(id), nil
}

func (db *Database) notificationView(id int64) model.Notification {
	n := db.Notifications[id]
	view := model.Notification{
		Id:             n.Id,
		Action:         n.Action,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
		NotifiableType: n.NotifiableType,
		NotifiableId:   n.NotifiableId,
		Actor:          db.author(n.ActorId),
	}
	if n.PostId != 0 {
		data := &model.NotifiableData{Id: n.PostId, ImageUrls: []string{}}
		if p, ok := db.Posts[n.PostId]; ok {
			data.ImageUrls = slices.Clone(p.ImageUrls)
		}
		view.NotifiableData = data
	}
	return view
}
