package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"social/client/api"
	"social/server/middleware"
	"social/server/repository"
	"social/server/router"
	"social/util/model"
)

func newBackend(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(router.New(repository.NewDatabase(), middleware.NewTokens("test-secret", time.Hour)))
	t.Cleanup(srv.Close)
	return api.New(srv.URL)
}

func signup(t *testing.T, c *api.Client, username string) model.AuthResponse {
	t.Helper()
	res, err := c.Signup(context.Background(), model.SignupUser{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup(%s): %v", username, err)
	}
	if res.Token == "" || res.User.Username != username {
		t.Fatalf("Signup(%s) = %+v", username, res)
	}
	return res
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("\x89PNG fake"), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	ana := signup(t, c, "ana")

	me, err := c.Me(ctx, ana.Token)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Id != ana.User.Id || me.Email != "ana@example.com" {
		t.Fatalf("Me = %+v", me)
	}

	res, err := c.Login(ctx, "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if res.User.Id != ana.User.Id {
		t.Fatalf("Login user = %+v", res.User)
	}

	_, err = c.Login(ctx, "ana", "wrong")
	if api.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("bad password: got %v", err)
	}

	_, err = c.Signup(ctx, model.SignupUser{Username: "ana", Email: "x@example.com", Password: "secret1"})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity || !strings.Contains(apiErr.Message, "taken") {
		t.Fatalf("duplicate signup: got %v", err)
	}

	if _, err := c.Me(ctx, "garbage"); api.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("Me with bad token: got %v", err)
	}
}

func TestPostsLikesAndComments(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	ana := signup(t, c, "ana")
	bob := signup(t, c, "bob")

	post, err := c.CreatePost(ctx, ana.Token, api.NewPost{
		Caption:    "sunset #beach",
		Location:   "Alicante",
		ImagePaths: []string{writeImage(t, "one.png"), writeImage(t, "two.jpg")},
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if len(post.ImageUrls) != 2 || !strings.Contains(post.ImageUrls[0], "/uploads/") {
		t.Fatalf("image urls = %v", post.ImageUrls)
	}

	res, err := http.Get(post.ImageUrls[0])
	if err != nil {
		t.Fatalf("GET upload: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || res.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("upload served %d %s", res.StatusCode, res.Header.Get("Content-Type"))
	}

	if _, err := c.CreatePost(ctx, ana.Token, api.NewPost{Caption: "no images"}); api.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("post without images: got %v", err)
	}

	feed, err := c.Feed(ctx, bob.Token, 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(feed.Items) != 1 || feed.Meta == nil || feed.Meta.TotalPages != 1 {
		t.Fatalf("Feed = %+v", feed)
	}

	if err := c.Like(ctx, bob.Token, post.Id); err != nil {
		t.Fatalf("Like: %v", err)
	}
	got, err := c.Post(ctx, bob.Token, post.Id)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if !got.LikedByMe || got.LikeCount != 1 {
		t.Fatalf("after like: %+v", got)
	}
	if err := c.Unlike(ctx, bob.Token, post.Id); err != nil {
		t.Fatalf("Unlike: %v", err)
	}

	comment, err := c.CreateComment(ctx, bob.Token, post.Id, "nice")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.Body != "nice" || comment.User.Username != "bob" {
		t.Fatalf("comment = %+v", comment)
	}

	comments, err := c.Comments(ctx, ana.Token, post.Id, 1)
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(comments.Items) != 1 || comments.Meta == nil {
		t.Fatalf("Comments = %+v", comments)
	}

	if err := c.DeleteComment(ctx, ana.Token, comment.Id); api.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("delete other's comment: got %v", err)
	}
	if err := c.DeleteComment(ctx, bob.Token, comment.Id); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}

	if _, err := c.Post(ctx, ana.Token, 9999); api.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing post: got %v", err)
	}
}

func TestFollowSearchAndNotifications(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	ana := signup(t, c, "ana")
	bob := signup(t, c, "bob")

	if err := c.Follow(ctx, bob.Token, ana.User.Id); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	u, err := c.UserByUsername(ctx, bob.Token, "ana")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if !u.IsFollowing || u.FollowersCount != 1 || u.Email != "" {
		t.Fatalf("profile = %+v", u)
	}

	users, err := c.SearchUsers(ctx, bob.Token, "an", 1)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(users.Items) != 1 || users.Items[0].Username != "ana" || !users.Items[0].IsFollowing {
		t.Fatalf("search = %+v", users.Items)
	}

	list, err := c.Notifications(ctx, ana.Token, 1)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(list.Items) != 1 || list.Meta != nil {
		t.Fatalf("notifications = %+v", list)
	}
	n := list.Items[0]
	if n.Read || n.Actor.Username != "bob" || !strings.Contains(n.Action, "followed") {
		t.Fatalf("notification = %+v", n)
	}

	if err := c.MarkNotificationRead(ctx, ana.Token, n.Id); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	list, _ = c.Notifications(ctx, ana.Token, 1)
	if !list.Items[0].Read {
		t.Fatalf("notification not marked read")
	}

	if err := c.Unfollow(ctx, bob.Token, ana.User.Id); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if err := c.Follow(ctx, ana.Token, ana.User.Id); api.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("self follow: got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	ana := signup(t, c, "ana")

	u, err := c.UpdateProfile(ctx, ana.Token, api.ProfileUpdate{
		Name:       "Ana García",
		Bio:        "hola",
		Website:    "example.com",
		Private:    true,
		AvatarPath: writeImage(t, "me.png"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.Name != "Ana García" || !u.Private || u.Website != "https://example.com" || u.AvatarUrl == "" {
		t.Fatalf("profile = %+v", u)
	}

	if _, err := c.UpdateProfile(ctx, ana.Token, api.ProfileUpdate{Name: ""}); api.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("empty name: got %v", err)
	}
}
