package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"social/util/model"
)

// ProfileUpdate son los campos del formulario de edición de perfil.
// AvatarPath vacío deja el avatar como está
type ProfileUpdate struct {
	Name       string
	Bio        string
	Website    string
	Private    bool
	AvatarPath string
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p ProfileUpdate) (model.User, error) {
	form := NewForm().
		Field("user[name]", p.Name).
		Field("user[bio]", p.Bio).
		Field("user[website]", p.Website).
		Field("user[private]", strconv.FormatBool(p.Private))
	if p.AvatarPath != "" {
		form.Path("user[avatar]", p.AvatarPath)
	}

	var raw json.RawMessage
	var user model.User
	if err := c.DoMultipart(ctx, http.MethodPatch, "/users", token, form, &raw); err != nil {
		return user, err
	}
	if isNull(raw) {
		return user, nil
	}
	err := decodeWrapped(raw, "user", &user)
	return user, err
}

func (c *Client) Follow(ctx context.Context, token string, userID int64) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/follow", userID), token, nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, token string, userID int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/follow", userID), token, nil, nil)
}

// SetFollowing sigue o deja de seguir según follow
func (c *Client) SetFollowing(ctx context.Context, token string, userID int64, follow bool) error {
	if follow {
		return c.Follow(ctx, token, userID)
	}
	return c.Unfollow(ctx, token, userID)
}

func (c *Client) SearchUsers(ctx context.Context, token, query string, page int) (Page[model.User], error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/search/users?q=%s&page=%d", url.QueryEscape(query), page)
	if err := c.Do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return Page[model.User]{}, err
	}
	return decodePage[model.User](raw, "users")
}
