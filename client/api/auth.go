package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"social/util/model"
)

func (c *Client) Login(ctx context.Context, login, password string) (model.AuthResponse, error) {
	var res model.AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", "", model.Credentials{Login: login, Password: password}, &res)
	return res, err
}

func (c *Client) Signup(ctx context.Context, user model.SignupUser) (model.AuthResponse, error) {
	var res model.AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth/signup", "", model.SignupRequest{User: user}, &res)
	return res, err
}

func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	return c.getUser(ctx, "/users/me", token)
}

func (c *Client) UserByUsername(ctx context.Context, token, username string) (model.User, error) {
	return c.getUser(ctx, "/users/"+url.PathEscape(username), token)
}

func (c *Client) getUser(ctx context.Context, path, token string) (model.User, error) {
	var raw json.RawMessage
	var user model.User
	if err := c.Do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return user, err
	}
	err := decodeWrapped(raw, "user", &user)
	return user, err
}
