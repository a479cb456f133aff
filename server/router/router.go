// Package router monta la API REST del servidor de desarrollo sobre gorilla/mux.
package router

import (
	"net/http"

	"social/server/etc"
	"social/server/handler"
	"social/server/middleware"
	"social/server/repository"

	"github.com/gorilla/mux"
)

const BasePath = "/api/v1"

func New(db *repository.Database, tokens *middleware.Tokens) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLog, middleware.InjectData(db), middleware.InjectTokens(tokens))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		etc.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		etc.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		etc.Response(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/uploads/{name}", handler.UploadHandler).Methods("GET")

	api := r.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/auth/login", handler.LoginHandler).Methods("POST")
	api.HandleFunc("/auth/signup", handler.SignupHandler).Methods("POST")

	// rutas que requieren usuario
	priv := api.NewRoute().Subrouter()
	priv.Use(middleware.Authorization)

	// /users/me antes que /users/{username}
	priv.HandleFunc("/users/me", handler.MeHandler).Methods("GET")
	priv.HandleFunc("/users", handler.UpdateProfileHandler).Methods("PATCH")
	priv.HandleFunc("/users/{id:[0-9]+}/follow", handler.FollowHandler).Methods("POST")
	priv.HandleFunc("/users/{id:[0-9]+}/follow", handler.UnfollowHandler).Methods("DELETE")
	priv.HandleFunc("/users/{username}", handler.UserHandler).Methods("GET")

	priv.HandleFunc("/posts", handler.FeedHandler).Methods("GET")
	priv.HandleFunc("/posts", handler.CreatePostHandler).Methods("POST")
	priv.HandleFunc("/posts/{id:[0-9]+}", handler.GetPostHandler).Methods("GET")
	priv.HandleFunc("/posts/{id:[0-9]+}/like", handler.LikeHandler).Methods("POST")
	priv.HandleFunc("/posts/{id:[0-9]+}/like", handler.UnlikeHandler).Methods("DELETE")
	priv.HandleFunc("/posts/{id:[0-9]+}/comments", handler.CommentsHandler).Methods("GET")
	priv.HandleFunc("/posts/{id:[0-9]+}/comments", handler.CreateCommentHandler).Methods("POST")
	priv.HandleFunc("/comments/{id:[0-9]+}", handler.DeleteCommentHandler).Methods("DELETE")

	priv.HandleFunc("/notifications", handler.NotificationsHandler).Methods("GET")
	priv.HandleFunc("/notifications/{id:[0-9]+}/read", handler.MarkNotificationReadHandler).Methods("PATCH")

	priv.HandleFunc("/search/users", handler.SearchUsersHandler).Methods("GET")

	return r
}
