package middleware

import (
	"context"
	"net/http"

	"social/server/repository"
)

type contextKey string

const (
	ContextKeyData   = contextKey("db")
	ContextKeyTokens = contextKey("tokens")
	ContextKeyUser   = contextKey("user")
)

func InjectData(data *repository.Database) func(next http.Handler) http.Handler {
	return inject(ContextKeyData, data)
}

func InjectTokens(tokens *Tokens) func(next http.Handler) http.Handler {
	return inject(ContextKeyTokens, tokens)
}

func inject(key contextKey, value any) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), key, value)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// UserId devuelve el id del usuario autenticado, o 0
func UserId(req *http.Request) int64 {
	id, _ := req.Context().Value(ContextKeyUser).(int64)
	return id
}
