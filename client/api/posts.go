package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"social/util/model"
)

// NewPost es el contenido de una publicación nueva. ImagePaths son rutas locales
type NewPost struct {
	Caption    string
	Location   string
	ImagePaths []string
}

func (c *Client) Feed(ctx context.Context, token string, page int) (Page[model.Post], error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/posts?page=%d", page), token, nil, &raw); err != nil {
		return Page[model.Post]{}, err
	}
	return decodePage[model.Post](raw, "posts", "data")
}

func (c *Client) CreatePost(ctx context.Context, token string, p NewPost) (model.Post, error) {
	form := NewForm().
		Field("post[caption]", p.Caption).
		Field("post[location]", p.Location)
	for _, path := range p.ImagePaths {
		form.Path("images[]", path)
	}

	var raw json.RawMessage
	var post model.Post
	if err := c.DoMultipart(ctx, http.MethodPost, "/posts", token, form, &raw); err != nil {
		return post, err
	}
	if isNull(raw) {
		return post, nil
	}
	err := decodeWrapped(raw, "post", &post)
	return post, err
}

func (c *Client) Post(ctx context.Context, token string, id int64) (model.Post, error) {
	var raw json.RawMessage
	var post model.Post
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), token, nil, &raw); err != nil {
		return post, err
	}
	err := decodeWrapped(raw, "post", &post)
	return post, err
}

func (c *Client) Like(ctx context.Context, token string, postID int64) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", postID), token, nil, nil)
}

func (c *Client) Unlike(ctx context.Context, token string, postID int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d/like", postID), token, nil, nil)
}

// SetLiked da o quita el like según like
func (c *Client) SetLiked(ctx context.Context, token string, postID int64, like bool) error {
	if like {
		return c.Like(ctx, token, postID)
	}
	return c.Unlike(ctx, token, postID)
}

func (c *Client) Comments(ctx context.Context, token string, postID int64, page int) (Page[model.Comment], error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/posts/%d/comments?page=%d", postID, page)
	if err := c.Do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return Page[model.Comment]{}, err
	}
	return decodePage[model.Comment](raw, "comments", "data")
}

func (c *Client) CreateComment(ctx context.Context, token string, postID int64, body string) (model.Comment, error) {
	var raw json.RawMessage
	var comment model.Comment
	req := model.CommentRequest{Comment: model.CommentBody{Body: body}}
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), token, req, &raw); err != nil {
		return comment, err
	}
	err := decodeWrapped(raw, "comment", &comment)
	return comment, err
}

func (c *Client) DeleteComment(ctx context.Context, token string, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), token, nil, nil)
}
