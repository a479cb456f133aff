package repository

import (
	"errors"
	"testing"
	"time"
)

func newUser(t *testing.T, db *Database, username string) int64 {
	t.Helper()
	u, err := CreateUser(db, username, username+"@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u.Id
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	db := NewDatabase()
	id := newUser(t, db, "ana")

	if _, err := CreateUser(db, "ANA", "other@example.com", "secret1", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}
	if _, err := CreateUser(db, "bob", "Ana@Example.com", "secret1", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v", err)
	}

	for _, login := range []string{"ana", "ana@example.com", " ANA "} {
		u, err := Authenticate(db, login, "secret1")
		if err != nil {
			t.Fatalf("Authenticate(%q): %v", login, err)
		}
		if u.Id != id {
			t.Fatalf("Authenticate(%q) id = %d, want %d", login, u.Id, id)
		}
	}
	if _, err := Authenticate(db, "ana", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestEmailHiddenFromOthers(t *testing.T) {
	db := NewDatabase()
	ana := newUser(t, db, "ana")
	bob := newUser(t, db, "bob")

	u, _ := GetUser(db, ana, bob)
	if u.Email != "" {
		t.Fatalf("email visible to other user: %q", u.Email)
	}
	u, _ = GetUser(db, ana, ana)
	if u.Email == "" {
		t.Fatalf("email hidden from self")
	}
}

func TestFollowCountsAndNotifications(t *testing.T) {
	db := NewDatabase()
	ana := newUser(t, db, "ana")
	bob := newUser(t, db, "bob")

	u, err := SetFollow(db, bob, ana, true)
	if err != nil {
		t.Fatalf("SetFollow: %v", err)
	}
	if !u.IsFollowing || u.FollowersCount != 1 {
		t.Fatalf("after follow: %+v", u)
	}
	// idempotente: no duplica la notificación
	SetFollow(db, bob, ana, true)

	list, _, unread := ListNotifications(db, ana, 1, 20)
	if len(list) != 1 || unread != 1 {
		t.Fatalf("notifications = %d (unread %d), want 1", len(list), unread)
	}
	if list[0].Action != "followed you" || list[0].Actor.Username != "bob" {
		t.Fatalf("unexpected notification: %+v", list[0])
	}

	u, _ = SetFollow(db, bob, ana, false)
	if u.IsFollowing || u.FollowersCount != 0 {
		t.Fatalf("after unfollow: %+v", u)
	}

	if _, err := SetFollow(db, ana, ana, true); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("self follow: got %v", err)
	}
}

func TestFeedNewestFirstAndPaged(t *testing.T) {
	db := NewDatabase()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	db.SetClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	})
	ana := newUser(t, db, "ana")

	for i := 0; i < 12; i++ {
		if _, err := CreatePost(db, ana, "hello #Go #go #tui", "", []string{"x.jpg"}); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	posts, meta := Feed(db, ana, 1, 10)
	if len(posts) != 10 || meta.TotalPages != 2 || meta.Count != 12 {
		t.Fatalf("page 1: %d posts, meta %+v", len(posts), meta)
	}
	if !posts[0].CreatedAt.After(posts[1].CreatedAt) {
		t.Fatalf("feed not newest first")
	}
	if len(posts[0].Tags) != 2 || posts[0].Tags[0] != "go" {
		t.Fatalf("tags = %v", posts[0].Tags)
	}

	posts, _ = Feed(db, ana, 2, 10)
	if len(posts) != 2 {
		t.Fatalf("page 2: %d posts", len(posts))
	}
	posts, _ = Feed(db, ana, 3, 10)
	if len(posts) != 0 {
		t.Fatalf("page 3: %d posts", len(posts))
	}
}

func TestLikesAndSelfActionsNotNotified(t *testing.T) {
	db := NewDatabase()
	ana := newUser(t, db, "ana")
	bob := newUser(t, db, "bob")
	post, _ := CreatePost(db, ana, "hi", "", []string{"a.jpg"})

	p, err := SetLike(db, post.Id, ana, true)
	if err != nil {
		t.Fatalf("SetLike: %v", err)
	}
	if !p.LikedByMe || p.LikeCount != 1 {
		t.Fatalf("after own like: %+v", p)
	}
	if list, _, _ := ListNotifications(db, ana, 1, 20); len(list) != 0 {
		t.Fatalf("self like notified: %+v", list)
	}

	SetLike(db, post.Id, bob, true)
	list, _, _ := ListNotifications(db, ana, 1, 20)
	if len(list) != 1 || list[0].NotifiableType != "Post" || list[0].NotifiableId != post.Id {
		t.Fatalf("like notification: %+v", list)
	}
	if list[0].NotifiableData == nil || list[0].NotifiableData.ImageUrls[0] != "a.jpg" {
		t.Fatalf("notifiable data: %+v", list[0].NotifiableData)
	}

	p, _ = SetLike(db, post.Id, bob, false)
	if p.LikedByMe || p.LikeCount != 1 {
		t.Fatalf("after unlike: %+v", p)
	}

	if _, err := SetLike(db, 999, bob, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("like missing post: got %v", err)
	}
}

func TestComments(t *testing.T) {
	db := NewDatabase()
	ana := newUser(t, db, "ana")
	bob := newUser(t, db, "bob")
	post, _ := CreatePost(db, ana, "hi", "", []string{"a.jpg"})

	first, err := CreateComment(db, post.Id, bob, "  first ")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if first.Body != "first" {
		t.Fatalf("body not trimmed: %q", first.Body)
	}
	second, _ := CreateComment(db, post.Id, bob, "second")

	comments, meta, err := ListComments(db, post.Id, 1, 20)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].Id != second.Id || meta.TotalPages != 1 {
		t.Fatalf("comments = %+v meta %+v", comments, meta)
	}

	p, _ := GetPost(db, post.Id, ana)
	if p.CommentCount != 2 {
		t.Fatalf("comment_count = %d", p.CommentCount)
	}

	list, _, _ := ListNotifications(db, ana, 1, 20)
	if len(list) != 2 || list[0].NotifiableType != "Comment" || list[0].NotifiableData.Id != post.Id {
		t.Fatalf("comment notifications: %+v", list)
	}

	if err := DeleteComment(db, first.Id, ana); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete other's comment: got %v", err)
	}
	if err := DeleteComment(db, first.Id, bob); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := DeleteComment(db, first.Id, bob); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice: got %v", err)
	}
	p, _ = GetPost(db, post.Id, ana)
	if p.CommentCount != 1 {
		t.Fatalf("comment_count after delete = %d", p.CommentCount)
	}

	if _, _, err := ListComments(db, 999, 1, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comments of missing post: got %v", err)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	db := NewDatabase()
	ana := newUser(t, db, "ana")
	bob := newUser(t, db, "bob")
	SetFollow(db, bob, ana, true)

	list, _, _ := ListNotifications(db, ana, 1, 20)
	id := list[0].Id

	if _, err := MarkNotificationRead(db, bob, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("mark other user's notification: got %v", err)
	}
	n, err := MarkNotificationRead(db, ana, id)
	if err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	if !n.Read {
		t.Fatalf("notification not read")
	}
	if _, _, unread := ListNotifications(db, ana, 1, 20); unread != 0 {
		t.Fatalf("unread = %d", unread)
	}
}

func TestSearchUsers(t *testing.T) {
	db := NewDatabase()
	for _, name := range []string{"carla", "ana", "anabel", "bob"} {
		newUser(t, db, name)
	}
	users, meta := SearchUsers(db, "AN", 0, 1, 20)
	if len(users) != 2 || users[0].Username != "ana" || users[1].Username != "anabel" {
		t.Fatalf("search = %+v", users)
	}
	if meta.Count != 2 {
		t.Fatalf("meta = %+v", meta)
	}
	if users, _ := SearchUsers(db, "", 0, 1, 20); len(users) != 4 {
		t.Fatalf("empty query returned %d users", len(users))
	}
}

func TestPageOf(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	got, meta := PageOf(items, 2, 2)
	if len(got) != 2 || got[0] != 3 || meta.TotalPages != 3 || meta.Page != 2 {
		t.Fatalf("PageOf = %v %+v", got, meta)
	}
	got, meta = PageOf([]int{}, 1, 10)
	if len(got) != 0 || meta.TotalPages != 0 {
		t.Fatalf("empty PageOf = %v %+v", got, meta)
	}
	if got, _ := PageOf(items, 0, 2); got[0] != 1 {
		t.Fatalf("page 0 should read as 1")
	}
}
