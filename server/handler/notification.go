package handler

import (
	"net/http"

	"social/server/etc"
	"social/server/repository"
	"social/util/model"
)

type notificationList struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// NotificationsHandler devuelve la lista anidada y sin meta; el cliente
// decide si hay más por el tamaño de la página
func NotificationsHandler(w http.ResponseWriter, req *http.Request) {
	page, err := etc.GetPage(req)
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, _, unread := repository.ListNotifications(etc.GetDb(req), etc.CurrentUser(req), page, etc.NotificationsPageSize)
	etc.Response(w, http.StatusOK, map[string]notificationList{
		"notifications": {Notifications: list, UnreadCount: unread},
	})
}

func MarkNotificationReadHandler(w http.ResponseWriter, req *http.Request) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := repository.MarkNotificationRead(etc.GetDb(req), etc.CurrentUser(req), id)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.Notification{"notification": n})
}
