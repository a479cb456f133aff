package handler

import (
	"net/http"
	"strings"

	"social/client/state"
	"social/server/etc"
	"social/server/repository"
	"social/util"
	"social/util/logging"
	"social/util/model"
)

func issue(w http.ResponseWriter, req *http.Request, status int, user model.User) {
	token, err := etc.GetTokens(req).Issue(user.Id)
	if err != nil {
		logging.Error("error firmando token", "err", err)
		etc.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	etc.Response(w, status, model.AuthResponse{Token: token, User: user})
}

func SignupHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var signup model.SignupRequest
	if err := util.DecodeJSON(req.Body, &signup); err != nil {
		etc.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	u := signup.User
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if strings.ContainsAny(u.Username, "@&?=/:; ") {
		etc.Errors(w, "Username contains invalid characters")
		return
	}
	if err := state.ValidateSignup(u.Username, u.Email, u.Password); err != nil {
		etc.Errors(w, err.Error())
		return
	}

	data := etc.GetDb(req)
	user, err := repository.CreateUser(data, u.Username, u.Email, u.Password, strings.TrimSpace(u.Name))
	if err != nil {
		etc.RepoError(w, err)
		return
	}

	logging.Info("registro", "user", user.Username, "id", user.Id)
	issue(w, req, http.StatusCreated, user)
}

func LoginHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var login model.Credentials
	if err := util.DecodeJSON(req.Body, &login); err != nil {
		etc.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(login.Login) == "" || login.Password == "" {
		etc.Error(w, http.StatusBadRequest, "Login and password are required")
		return
	}

	data := etc.GetDb(req)
	user, err := repository.Authenticate(data, login.Login, login.Password)
	if err != nil {
		logging.Info("login fallido", "login", login.Login)
		etc.RepoError(w, err)
		return
	}

	logging.Info("login", "user", user.Username)
	issue(w, req, http.StatusOK, user)
}
