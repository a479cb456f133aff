package repository

import (
	"errors"
	"sync"
	"time"

	"social/util/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrUsernameTaken  = errors.New("username has already been taken")
	ErrEmailTaken     = errors.New("email has already been taken")
	ErrBadCredentials = errors.New("invalid login or password")
	ErrSelfFollow     = errors.New("you cannot follow yourself")
)

type UserRecord struct {
	model.User
	Salt      []byte
	Hash      []byte
	CreatedAt time.Time
}

type PostRecord struct {
	Id        int64
	AuthorId  int64
	Caption   string
	Location  string
	ImageUrls []string
	Tags      []string
	CreatedAt time.Time
}

type CommentRecord struct {
	Id        int64
	PostId    int64
	AuthorId  int64
	Body      string
	CreatedAt time.Time
}

type NotificationRecord struct {
	Id             int64
	UserId         int64
	ActorId        int64
	Action         string
	NotifiableType string
	NotifiableId   int64
	PostId         int64
	Read           bool
	CreatedAt      time.Time
}

type Upload struct {
	ContentType string
	Data        []byte
}

// Database es la BD en memoria del servidor de desarrollo. Todas las funciones
// del paquete toman el cerrojo
type Database struct {
	mu sync.RWMutex

	Users     map[int64]*UserRecord
	UserIds   []int64
	UserNames map[string]int64 // username en minúsculas -> id
	Emails    map[string]int64

	Follows map[int64]map[int64]bool // seguidor -> seguidos

	Posts   map[int64]*PostRecord
	PostIds []int64 // más reciente primero
	Likes   map[int64]map[int64]bool

	Comments     map[int64]*CommentRecord
	PostComments map[int64][]int64 // más reciente primero

	Notifications     map[int64]*NotificationRecord
	UserNotifications map[int64][]int64 // más reciente primero

	Uploads map[string]Upload

	nextId int64
	now    func() time.Time
}

func NewDatabase() *Database {
	return &Database{
		Users:             make(map[int64]*UserRecord),
		UserNames:         make(map[string]int64),
		Emails:            make(map[string]int64),
		Follows:           make(map[int64]map[int64]bool),
		Posts:             make(map[int64]*PostRecord),
		Likes:             make(map[int64]map[int64]bool),
		Comments:          make(map[int64]*CommentRecord),
		PostComments:      make(map[int64][]int64),
		Notifications:     make(map[int64]*NotificationRecord),
		UserNotifications: make(map[int64][]int64),
		Uploads:           make(map[string]Upload),
		now:               time.Now,
	}
}

// SetClock fija el reloj usado para las fechas de creación
func (db *Database) SetClock(now func() time.Time) {
	db.mu.Lock()
	db.now = now
	db.mu.Unlock()
}

func (db *Database) id() int64 {
	db.nextId++
	return db.nextId
}

func (db *Database) author(id int64) model.Author {
	u, ok := db.Users[id]
	if !ok {
		return model.Author{Id: id}
	}
	return u.Author()
}

// PageOf devuelve el trozo de items de la página (1-based) y su meta
func PageOf[T any](items []T, page, size int) ([]T, model.Meta) {
	if page < 1 {
		page = 1
	}
	n := len(items)
	total := (n + size - 1) / size
	meta := model.Meta{Page: page, TotalPages: total, Count: n}

	start := (page - 1) * size
	if start >= n {
		return []T{}, meta
	}
	end := min(start+size, n)
	return items[start:end], meta
}
