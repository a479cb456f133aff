package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"social/client/api"
	"social/client/state"
	"social/client/storage"
	"social/util/model"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAPI struct {
	users     map[string]model.User // token -> user
	lastLogin model.Credentials
	lastSign  model.SignupUser
	loginErr  error
}

func (f *fakeAPI) Login(ctx context.Context, login, password string) (model.AuthResponse, error) {
	f.lastLogin = model.Credentials{Login: login, Password: password}
	if f.loginErr != nil {
		return model.AuthResponse{}, f.loginErr
	}
	u := model.User{Id: 1, Username: login}
	f.users["tok-"+login] = u
	return model.AuthResponse{Token: "tok-" + login, User: u}, nil
}

func (f *fakeAPI) Signup(ctx context.Context, user model.SignupUser) (model.AuthResponse, error) {
	f.lastSign = user
	u := model.User{Id: 2, Username: user.Username, Name: user.Name, Email: user.Email}
	f.users["tok-"+user.Username] = u
	return model.AuthResponse{Token: "tok-" + user.Username, User: u}, nil
}

func (f *fakeAPI) Me(ctx context.Context, token string) (model.User, error) {
	u, ok := f.users[token]
	if !ok {
		return model.User{}, &api.Error{Status: 401, Message: "Unauthorized"}
	}
	return u, nil
}

func newSession(t *testing.T) (*Session, *fakeAPI, storage.TokenStore) {
	t.Helper()
	f := &fakeAPI{users: map[string]model.User{}}
	store := storage.NewFileStore(t.TempDir())
	return NewSession(f, store), f, store
}

func TestRestore_NoToken(t *testing.T) {
	s, _, _ := newSession(t)
	if !s.Loading() {
		t.Fatalf("a new session starts loading")
	}
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.Loading() || s.LoggedIn() {
		t.Fatalf("unexpected state loading=%v loggedIn=%v", s.Loading(), s.LoggedIn())
	}
}

func TestRestore_ValidToken(t *testing.T) {
	s, f, store := newSession(t)
	f.users["good"] = model.User{Id: 3, Username: "carol"}
	if err := store.Save("good"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	u, ok := s.User()
	if !ok || u.Username != "carol" || s.Token() != "good" {
		t.Fatalf("session = %+v, %q", u, s.Token())
	}
}

func TestRestore_RejectedTokenIsDeleted(t *testing.T) {
	s, _, store := newSession(t)
	if err := store.Save("expired"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("session should be empty")
	}
	if _, err := store.Get(); !errors.Is(err, storage.ErrNoToken) {
		t.Fatalf("stored token not deleted: %v", err)
	}
}

func TestLogin_SavesTokenAndUser(t *testing.T) {
	s, f, store := newSession(t)
	if err := s.Login(context.Background(), "  dave ", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if f.lastLogin.Login != "dave" {
		t.Fatalf("login not trimmed: %q", f.lastLogin.Login)
	}
	if got, _ := store.Get(); got != "tok-dave" {
		t.Fatalf("stored token = %q", got)
	}
	if u, ok := s.User(); !ok || u.Username != "dave" {
		t.Fatalf("user = %+v", u)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	s, _, _ := newSession(t)
	if err := s.Login(context.Background(), " ", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Login(context.Background(), "x", ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("Login: %v", err)
	}
}

func TestLogin_APIErrorLeavesSessionEmpty(t *testing.T) {
	s, f, store := newSession(t)
	f.loginErr = &api.Error{Status: 401, Message: "Invalid login"}
	err := s.Login(context.Background(), "eve", "pw")
	if err == nil || err.Error() != "Invalid login" {
		t.Fatalf("Login err = %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("session should be empty")
	}
	if _, err := store.Get(); !errors.Is(err, storage.ErrNoToken) {
		t.Fatalf("token stored after failed login")
	}
}

func TestSignup_NormalizesAndValidates(t *testing.T) {
	s, f, _ := newSession(t)
	err := s.Signup(context.Background(), SignupParams{Username: "ab", Email: "x@y.z", Password: "secret"})
	if !errors.Is(err, state.ErrUsernameShort) {
		t.Fatalf("Signup short username: %v", err)
	}

	err = s.Signup(context.Background(), SignupParams{
		Username: " Frank ", Email: " Frank@Example.COM ", Password: "secret1", Name: "  ",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if f.lastSign.Username != "frank" || f.lastSign.Email != "frank@example.com" || f.lastSign.Name != "" {
		t.Fatalf("signup payload = %+v", f.lastSign)
	}
	if !s.LoggedIn() {
		t.Fatalf("not logged in after signup")
	}
}

func TestLogoutAndRefresh(t *testing.T) {
	s, f, store := newSession(t)
	if err := s.RefreshMe(context.Background()); err != nil {
		t.Fatalf("RefreshMe without token: %v", err)
	}
	if err := s.Login(context.Background(), "gina", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	f.users["tok-gina"] = model.User{Id: 1, Username: "gina", Bio: "updated"}
	if err := s.RefreshMe(context.Background()); err != nil {
		t.Fatalf("RefreshMe: %v", err)
	}
	if u, _ := s.User(); u.Bio != "updated" {
		t.Fatalf("user not refreshed: %+v", u)
	}

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("still logged in")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("user kept after logout")
	}
	if _, err := store.Get(); !errors.Is(err, storage.ErrNoToken) {
		t.Fatalf("token kept after logout")
	}
}

func TestExpiresAt(t *testing.T) {
	s, f, _ := newSession(t)
	if _, ok := s.ExpiresAt(); ok {
		t.Fatalf("no expiry without token")
	}

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	f.users[tok] = model.User{Id: 1, Username: "hal"}
	s.set(tok, f.users[tok])

	got, ok := s.ExpiresAt()
	if !ok || !got.Equal(exp) {
		t.Fatalf("ExpiresAt = %v, %v, want %v", got, ok, exp)
	}
}

func TestRestore_ExpiredTokenSkipsServer(t *testing.T) {
	s, f, store := newSession(t)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	// el servidor lo aceptaría; no se le llega a preguntar
	f.users[tok] = model.User{Id: 1, Username: "ivy"}
	if err := store.Save(tok); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("expired token restored a session")
	}
	if _, err := store.Get(); !errors.Is(err, storage.ErrNoToken) {
		t.Fatalf("expired token still stored: %v", err)
	}
}
