package etc

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"social/server/middleware"
	"social/server/repository"
	"social/util"
	"social/util/logging"
	"social/util/model"

	"github.com/gorilla/mux"
)

// Tamaños de página fijos por recurso
const (
	PostsPageSize         = 10
	CommentsPageSize      = 20
	NotificationsPageSize = 20
	UsersPageSize         = 20
)

// MaxUploadMemory es lo que se guarda en memoria al parsear un multipart
const MaxUploadMemory = 32 << 20

func Response(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if _, err := w.Write(util.EncodeJSON(v)); err != nil {
		logging.Error("error enviando respuesta", "err", err)
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	Response(w, status, model.ErrorResp{Error: msg})
}

// Errors responde 422 con la lista de errores de validación
func Errors(w http.ResponseWriter, msgs ...string) {
	Response(w, http.StatusUnprocessableEntity, model.ErrorResp{Errors: msgs})
}

// RepoError traduce los errores del repositorio a códigos HTTP
func RepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, repository.ErrBadCredentials):
		Error(w, http.StatusUnauthorized, "Invalid login or password")
	case errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrSelfFollow):
		Errors(w, capitalize(err.Error()))
	default:
		logging.Error("error inesperado", "err", err)
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func GetDb(req *http.Request) *repository.Database {
	db, _ := req.Context().Value(middleware.ContextKeyData).(*repository.Database)
	return db
}

func GetTokens(req *http.Request) *middleware.Tokens {
	t, _ := req.Context().Value(middleware.ContextKeyTokens).(*middleware.Tokens)
	return t
}

// CurrentUser es el id del usuario autenticado
func CurrentUser(req *http.Request) int64 {
	return middleware.UserId(req)
}

// GetPage lee ?page=N (1-based). Ausente vale 1
func GetPage(req *http.Request) (int, error) {
	s := req.URL.Query().Get("page")
	if s == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page %q", s)
	}
	return page, nil
}

// PathId lee la variable de ruta name como id
func PathId(req *http.Request, name string) (int64, error) {
	s := mux.Vars(req)[name]
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}

// BaseURL es el esquema y host con el que llegó la petición
func BaseURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if p := req.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + req.Host
}

// UploadURL es la URL pública de un fichero subido
func UploadURL(req *http.Request, name string) string {
	return BaseURL(req) + "/uploads/" + name
}
