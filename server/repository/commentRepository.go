package repository

import (
	"slices"
	"strings"

	"social/util/model"
)

func CreateComment(db *Database, postId, author int64, body string) (model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	post, ok := db.Posts[postId]
	if !ok {
		return model.Comment{}, ErrNotFound
	}

	c := &CommentRecord{
		Id:        db.id(),
		PostId:    postId,
		AuthorId:  author,
		Body:      strings.TrimSpace(body),
		CreatedAt: db.now(),
	}
	db.Comments[c.Id] = c
	db.PostComments[postId] = slices.Insert(db.PostComments[postId], 0, c.Id)

	db.notify(post.AuthorId, author, "commented on your post", "Comment", c.Id, postId)

	return db.commentView(c.Id), nil
}

func ListComments(db *Database, postId int64, page, size int) ([]model.Comment, model.Meta, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, ok := db.Posts[postId]; !ok {
		return nil, model.Meta{}, ErrNotFound
	}
	ids, meta := PageOf(db.PostComments[postId], page, size)
	comments := make([]model.Comment, len(ids))
	for i, id := range ids {
		comments[i] = db.commentView(id)
	}
	return comments, meta, nil
}

// DeleteComment borra un comentario propio
func DeleteComment(db *Database, id, user int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.Comments[id]
	if !ok {
		return ErrNotFound
	}
	if c.AuthorId != user {
		return ErrForbidden
	}

	delete(db.Comments, id)
	db.PostComments[c.PostId] = slices.DeleteFunc(db.PostComments[c.PostId], func(x int64) bool { return x == id })
	return nil
}

func (db *Database) commentView(id int64) model.Comment {
	c := db.Comments[id]
	return model.Comment{
		Id:        c.Id,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		User:      db.author(c.AuthorId),
	}
}
