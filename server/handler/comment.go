package handler

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"social/client/state"
	"social/server/etc"
	"social/server/repository"
	"social/util"
	"social/util/model"
)

func CommentsHandler(w http.ResponseWriter, req *http.Request) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := etc.GetPage(req)
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, meta, err := repository.ListComments(etc.GetDb(req), id, page, etc.CommentsPageSize)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusOK, model.CommentsResp{Comments: comments, Meta: &meta})
}

func CreateCommentHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var body model.CommentRequest
	if err := util.DecodeJSON(req.Body, &body); err != nil {
		etc.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	text := strings.TrimSpace(body.Comment.Body)
	if text == "" {
		etc.Errors(w, "Body can't be blank")
		return
	}
	if n := utf8.RuneCountInString(text); n > state.MaxComment {
		etc.Errors(w, fmt.Sprintf("Body is too long (%d/%d)", n, state.MaxComment))
		return
	}

	comment, err := repository.CreateComment(etc.GetDb(req), id, etc.CurrentUser(req), text)
	if err != nil {
		etc.RepoError(w, err)
		return
	}
	etc.Response(w, http.StatusCreated, map[string]model.Comment{"comment": comment})
}

func DeleteCommentHandler(w http.ResponseWriter, req *http.Request) {
	id, err := etc.PathId(req, "id")
	if err != nil {
		etc.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := repository.DeleteComment(etc.GetDb(req), id, etc.CurrentUser(req)); err != nil {
		etc.RepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
