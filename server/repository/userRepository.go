package repository

import (
	"crypto/rand"
	"crypto/subtle"
	"slices"
	"strings"

	"social/util/model"

	"golang.org/x/crypto/argon2"
)

func hashPassword(password string, salt []byte) []byte {
	return argon2.Key([]byte(password), salt, 3, 32*1024, 4, 32)
}

func CreateUser(db *Database, username, email, password, name string) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.UserNames[strings.ToLower(username)]; ok {
		return model.User{}, ErrUsernameTaken
	}
	if _, ok := db.Emails[strings.ToLower(email)]; ok {
		return model.User{}, ErrEmailTaken
	}

	u := &UserRecord{CreatedAt: db.now()}
	u.Id = db.id()
	u.Username = username
	u.Email = email
	u.Name = name
	u.Salt = make([]byte, 16)
	rand.Read(u.Salt)
	u.Hash = hashPassword(password, u.Salt)

	db.Users[u.Id] = u
	db.UserIds = append(db.UserIds, u.Id)
	db.UserNames[strings.ToLower(username)] = u.Id
	db.Emails[strings.ToLower(email)] = u.Id

	return db.userView(u.Id, u.Id), nil
}

// Authenticate acepta nombre de usuario o email
func Authenticate(db *Database, login, password string) (model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(login))
	id, ok := db.UserNames[key]
	if !ok {
		id, ok = db.Emails[key]
	}
	if !ok {
		return model.User{}, ErrBadCredentials
	}

	u := db.Users[id]
	if subtle.ConstantTimeCompare(u.Hash, hashPassword(password, u.Salt)) != 1 {
		return model.User{}, ErrBadCredentials
	}
	return db.userView(id, id), nil
}

func UserExists(db *Database, id int64) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.Users[id]
	return ok
}

// GetUser devuelve la vista del usuario id tal como la ve viewer
func GetUser(db *Database, id, viewer int64) (model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if _, ok := db.Users[id]; !ok {
		return model.User{}, ErrNotFound
	}
	return db.userView(id, viewer), nil
}

func GetUserByUsername(db *Database, username string, viewer int64) (model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	id, ok := db.UserNames[strings.ToLower(username)]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return db.userView(id, viewer), nil
}

type ProfileChanges struct {
	Name      string
	Bio       string
	Website   string
	Private   bool
	AvatarUrl string // vacío = sin cambios
}

func UpdateProfile(db *Database, id int64, c ProfileChanges) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.Users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	u.Name = c.Name
	u.Bio = c.Bio
	u.Website = c.Website
	u.Private = c.Private
	if c.AvatarUrl != "" {
		u.AvatarUrl = c.AvatarUrl
	}
	return db.userView(id, id), nil
}

// SetFollow crea o borra la relación follower -> followee. Es idempotente
func SetFollow(db *Database, follower, followee int64, follow bool) (model.User, error) {
	if follower == followee {
		return model.User{}, ErrSelfFollow
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.Users[followee]; !ok {
		return model.User{}, ErrNotFound
	}

	following := db.Follows[follower]
	if following == nil {
		following = make(map[int64]bool)
		db.Follows[follower] = following
	}

	if follow && !following[followee] {
		following[followee] = true
		db.notify(followee, follower, "followed you", "User", follower, 0)
	} else if !follow {
		delete(following, followee)
	}
	return db.userView(followee, follower), nil
}

// SearchUsers busca q en nombre de usuario y nombre, sin distinguir mayúsculas.
// Con q vacío devuelve todos ordenados por nombre de usuario
func SearchUsers(db *Database, q string, viewer int64, page, size int) ([]model.User, model.Meta) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	ids := make([]int64, 0)
	for _, id := range db.UserIds {
		u := db.Users[id]
		if q == "" || strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Name), q) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b int64) int {
		return strings.Compare(db.Users[a].Username, db.Users[b].Username)
	})

	pageIds, meta := PageOf(ids, page, size)
	users := make([]model.User, len(pageIds))
	for i, id := range pageIds {
		users[i] = db.userView(id, viewer)
	}
	return users, meta
}

func (db *Database) userView(id, viewer int64) model.User {
	rec := db.Users[id]
	u := rec.User

	followers := 0
	for _, following := range db.Follows {
		if following[id] {
			followers++
		}
	}
	u.FollowersCount = followers
	u.FollowingCount = len(db.Follows[id])

	posts := 0
	for _, p := range db.Posts {
		if p.AuthorId == id {
			posts++
		}
	}
	u.PostsCount = posts

	if viewer != id {
		u.Email = ""
		u.IsFollowing = db.Follows[viewer][id]
		u.FollowsMe = db.Follows[id][viewer]
	}
	return u
}
