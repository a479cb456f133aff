package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"social/server/repository"
	"social/util"
	"social/util/logging"
	"social/util/model"
)

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write(util.EncodeJSON(model.ErrorResp{Error: msg}))
}

// Authorization valida el Bearer JWT y mete el id del usuario en el contexto
func Authorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tokens, _ := req.Context().Value(ContextKeyTokens).(*Tokens)
		data, _ := req.Context().Value(ContextKeyData).(*repository.Database)
		if tokens == nil || data == nil {
			logging.Error("authorization: tokens o DB no inyectados")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		tokenStr, err := bearer(req.Header.Get("Authorization"))
		if err != nil {
			logging.Info("error de login", "err", err, "path", req.URL.Path)
			unauthorized(w, "Unauthorized")
			return
		}

		id, err := tokens.Parse(tokenStr)
		if err != nil {
			logging.Info("token inválido", "err", err)
			unauthorized(w, "Invalid or expired token")
			return
		}

		if !repository.UserExists(data, id) {
			logging.Info("usuario del token no existe", "user", id)
			unauthorized(w, "Unauthorized")
			return
		}

		ctx := context.WithValue(req.Context(), ContextKeyUser, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func bearer(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", errors.New("empty token")
	}
	return tok, nil
}

// RequestLog registra método, ruta, estado y duración de cada petición
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, req)
		logging.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", req.Header.Get("X-Request-Id"))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
