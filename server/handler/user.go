package handler

import (
	"net/http"
	"strconv"
	"strings"

	"social/client/state"
	"social/server/etc"
	"social/server/repository"
	"social/util/logging"
	"social/util/model"

	"github.com/gorilla/mux"
)

func MeHandler(w http.ResponseWriter, req *http.Request) {
	id := etc.CurrentUser(req)
	user, err := repository.GetUser(etc.GetDb(req), id, id)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.User{"user": user})
}

func UserHandler(w http.ResponseWriter, req *http.Request) {
	username := mux.Vars(req)["username"]
	user, err := repository.GetUserByUsername(etc.GetDb(req), username, etc.CurrentUser(req))
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.User{"user": user})
}

// UpdateProfileHandler recibe un multipart con user[name], user[bio],
// user[website], user[private] y opcionalmente user[avatar]
func UpdateProfileHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(etc.MaxUploadMemory); err != nil {
		etc.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	changes := repository.ProfileChanges{
		Name:    strings.TrimSpace(req.FormValue("user[name]")),
		Bio:     strings.TrimSpace(req.FormValue("user[bio]")),
		Website: strings.TrimSpace(req.FormValue("user[website]")),
	}
	changes.Private, _ = strconv.ParseBool(req.FormValue("user[private]"))
	if changes.Website != "" {
		changes.Website = state.NormalizeWebsite(changes.Website)
	}

	if err := state.ValidateProfile(changes.Name, changes.Bio); err != nil {
		etc.Errors(w, err.Error())
		return
	}

	if files := req.MultipartForm.File["user[avatar]"]; len(files) > 0 {
		urls, err := saveFiles(req, files[:1])
		if err != nil {
			logging.Error("error guardando avatar", "err", err)
			etc.Error(w, http.StatusInternalServerError, "Could not save avatar")
			return
		}
		changes.AvatarUrl = urls[0]
	}

	user, err := repository.UpdateProfile(etc.GetDb(req), etc.CurrentUser(req), changes)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.User{"user": user})
}

func follow(w http.ResponseWriter, req *http.Request, on bool) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := repository.SetFollow(etc.GetDb(req), etc.CurrentUser(req), id, on)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.User{"user": user})
}

func FollowHandler(w http.ResponseWriter, req *http.Request) {
	follow(w, req, true)
}

func UnfollowHandler(w http.ResponseWriter, req *http.Request) {
	follow(w, req, false)
}

func SearchUsersHandler(w http.ResponseWriter, req *http.Request) {
	page, err := etc.GetPage(req)
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	q := req.URL.Query().Get("q")
	users, meta := repository.SearchUsers(etc.GetDb(req), q, etc.CurrentUser(req), page, etc.UsersPageSize)
	etc.Response(w, http.StatusOK, model.UsersResp{Users: users, Meta: &meta})
}
