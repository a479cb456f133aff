package handler

import (
	"net/http"
	"strings"

	"social/client/state"
	"social/server/etc"
	"social/server/repository"
	"social/util/logging"
	"social/util/model"
)

func FeedHandler(w http.ResponseWriter, req *http.Request) {
	page, err := etc.GetPage(req)
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, meta := repository.Feed(etc.GetDb(req), etc.CurrentUser(req), page, etc.PostsPageSize)
	logging.Debug("feed", "page", page, "posts", len(posts))
	etc.Response(w, http.StatusOK, model.PostsResp{Posts: posts, Meta: &meta})
}

// CreatePostHandler recibe post[caption], post[location] y los ficheros images[]
func CreatePostHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(etc.MaxUploadMemory); err != nil {
		etc.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	caption := strings.TrimSpace(req.FormValue("post[caption]"))
	location := strings.TrimSpace(req.FormValue("post[location]"))
	files := req.MultipartForm.File["images[]"]

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}
	if err := state.ValidatePost(caption, names); err != nil {
		etc.Errors(w, err.Error())
		return
	}

	urls, err := saveFiles(req, files)
	if err != nil {
		logging.Error("error guardando imágenes", "err", err)
		etc.Error(w, http.StatusInternalServerError, "Could not save images")
		return
	}

	post, err := repository.CreatePost(etc.GetDb(req), etc.CurrentUser(req), caption, location, urls)
	if err != nil {
		etc.RepoError(w, err)
		return
	}

	logging.Info("post creado", "id", post.Id, "user", post.User.Username, "images", len(urls))
	etc.Response(w, http.StatusCreated, map[string]model.Post{"post": post})
}

func GetPostHandler(w http.ResponseWriter, req *http.Request) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	post, err := repository.GetPost(etc.GetDb(req), id, etc.CurrentUser(req))
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.Post{"post": post})
}

func like(w http.ResponseWriter, req *http.Request, on bool) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	post, err := repository.SetLike(etc.GetDb(req), id, etc.CurrentUser(req), on)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, map[string]model.Post{"post": post})
}

func LikeHandler(w http.ResponseWriter, req *http.Request) {
	like(w, req, true)
}

func UnlikeHandler(w http.ResponseWriter, req *http.Request) {
	like(w, req, false)
}
