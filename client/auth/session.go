// Package auth mantiene la sesión del usuario: token, usuario actual y las
// operaciones de login, registro, logout y refresco.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"social/client/state"
	"social/client/storage"
	"social/util/logging"
	"social/util/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrMissingFields = errors.New("please fill in all fields")
)

// API es la parte del cliente REST que usa la sesión
type API interface {
	Login(ctx context.Context, login, password string) (model.AuthResponse, error)
	Signup(ctx context.Context, user model.SignupUser) (model.AuthResponse, error)
	Me(ctx context.Context, token string) (model.User, error)
}

type SignupParams struct {
	Username string
	Email    string
	Password string
	Name     string
}

type Session struct {
	api   API
	store storage.TokenStore

	mu      sync.RWMutex
	user    *model.User
	token   string
	loading bool
}

func NewSession(api API, store storage.TokenStore) *Session {
	return &Session{api: api, store: store, loading: true}
}

// Restore recupera el token guardado y el usuario asociado. Si el token ya no
// sirve se borra y la sesión queda vacía
func (s *Session) Restore(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.store.Get()
	if errors.Is(err, storage.ErrNoToken) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}

	if exp, ok := tokenExpiry(token); ok && !exp.After(time.Now()) {
		logging.Info("stored token expired, clearing session", "expired_at", exp)
		s.discard()
		return nil
	}

	me, err := s.api.Me(ctx, token)
	if err != nil {
		logging.Info("stored token rejected, clearing session", "err", err)
		s.discard()
		return nil
	}

	s.set(token, me)
	return nil
}

func (s *Session) discard() {
	if err := s.store.Delete(); err != nil {
		logging.Warn("could not delete stored token", "err", err)
	}
	s.clear()
}

func (s *Session) Login(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return ErrMissingFields
	}

	res, err := s.api.Login(ctx, login, password)
	if err != nil {
		return err
	}
	return s.accept(res)
}

func (s *Session) Signup(ctx context.Context, p SignupParams) error {
	if err := state.ValidateSignup(p.Username, p.Email, p.Password); err != nil {
		return err
	}

	res, err := s.api.Signup(ctx, model.SignupUser{
		Username: strings.ToLower(strings.TrimSpace(p.Username)),
		Email:    strings.ToLower(strings.TrimSpace(p.Email)),
		Password: p.Password,
		Name:     strings.TrimSpace(p.Name),
	})
	if err != nil {
		return err
	}
	return s.accept(res)
}

func (s *Session) accept(res model.AuthResponse) error {
	if res.Token == "" {
		return errors.New("server returned no token")
	}
	if err := s.store.Save(res.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	s.set(res.Token, res.User)
	logging.Info("logged in", "user", res.User.Username)
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Delete()
	s.clear()
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// RefreshMe vuelve a pedir el usuario actual. Sin token no hace nada
func (s *Session) RefreshMe(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}
	me, err := s.api.Me(ctx, token)
	if err != nil {
		return err
	}
	s.SetUser(me)
	return nil
}

func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Session) SetUser(u model.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ExpiresAt lee la caducidad del token si es un JWT. El token no se verifica:
// solo el servidor conoce la clave
func (s *Session) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Session) set(token string, u model.User) {
	s.mu.Lock()
	s.token = token
	s.user = &u
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
