package repository

import (
	"regexp"
	"slices"
	"strings"

	"social/util/model"
)

var tagRe = regexp.MustCompile(`#(\w+)`)

func parseTags(caption string) []string {
	tags := []string{}
	for _, m := range tagRe.FindAllStringSubmatch(caption, -1) {
		tag := strings.ToLower(m[1])
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func CreatePost(db *Database, author int64, caption, location string, imageUrls []string) (model.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.Users[author]; !ok {
		return model.Post{}, ErrNotFound
	}

	caption = strings.TrimSpace(caption)
	post := &PostRecord{
		Id:        db.id(),
		AuthorId:  author,
		Caption:   caption,
		Location:  strings.TrimSpace(location),
		ImageUrls: imageUrls,
		Tags:      parseTags(caption),
		CreatedAt: db.now(),
	}

	db.Posts[post.Id] = post
	db.PostIds = slices.Insert(db.PostIds, 0, post.Id)

	return db.postView(post.Id, author), nil
}

func GetPost(db *Database, id, viewer int64) (model.Post, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if _, ok := db.Posts[id]; !ok {
		return model.Post{}, ErrNotFound
	}
	return db.postView(id, viewer), nil
}

// Feed devuelve todos los posts, el más reciente primero
func Feed(db *Database, viewer int64, page, size int) ([]model.Post, model.Meta) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids, meta := PageOf(db.PostIds, page, size)
	posts := make([]model.Post, len(ids))
	for i, id := range ids {
		posts[i] = db.postView(id, viewer)
	}
	return posts, meta
}

// SetLike da o quita el like de user. Es idempotente
func SetLike(db *Database, postId, user int64, like bool) (model.Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	post, ok := db.Posts[postId]
	if !ok {
		return model.Post{}, ErrNotFound
	}

	likes := db.Likes[postId]
	if likes == nil {
		likes = make(map[int64]bool)
		db.Likes[postId] = likes
	}

	if like && !likes[user] {
		likes[user] = true
		db.notify(post.AuthorId, user, "liked your post", "Post", postId, postId)
	} else if !like {
		delete(likes, user)
	}
	return db.postView(postId, user), nil
}

func (db *Database) postView(id, viewer int64) model.Post {
	rec := db.Posts[id]
	return model.Post{
		Id:           rec.Id,
		Caption:      rec.Caption,
		Location:     rec.Location,
		CreatedAt:    rec.CreatedAt,
		ImageUrls:    slices.Clone(rec.ImageUrls),
		LikeCount:    len(db.Likes[id]),
		CommentCount: len(db.PostComments[id]),
		LikedByMe:    db.Likes[id][viewer],
		Tags:         slices.Clone(rec.Tags),
		User:         db.author(rec.AuthorId),
	}
}
