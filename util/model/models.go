package model

import "time"

type User struct {
	Id             int64  `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Website        string `json:"website,omitempty"`
	AvatarUrl      string `json:"avatar_url,omitempty"`
	Private        bool   `json:"private"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostsCount     int    `json:"posts_count"`
	// solo presentes cuando se consulta otro usuario
	IsFollowing bool `json:"is_following,omitempty"`
	FollowsMe   bool `json:"follows_me,omitempty"`
}

// Author es la vista reducida de un usuario que acompaña a posts, comentarios y notificaciones
type Author struct {
	Id        int64  `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	AvatarUrl string `json:"avatar_url,omitempty"`
}

type Post struct {
	Id           int64     `json:"id"`
	Caption      string    `json:"caption,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ImageUrls    []string  `json:"image_urls"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	LikedByMe    bool      `json:"liked_by_me"`
	Tags         []string  `json:"tags"`
	User         Author    `json:"user"`
}

type Comment struct {
	Id        int64     `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int       `json:"like_count"`
	User      Author    `json:"user"`
}

type NotifiableData struct {
	Id        int64    `json:"id"`
	ImageUrls []string `json:"image_urls"`
}

type Notification struct {
	Id             int64           `json:"id"`
	Action         string          `json:"action"`
	Read           bool            `json:"read"`
	CreatedAt      time.Time       `json:"created_at"`
	NotifiableType string          `json:"notifiable_type"`
	NotifiableId   int64           `json:"notifiable_id"`
	Actor          Author          `json:"actor"`
	NotifiableData *NotifiableData `json:"notifiable_data,omitempty"`
}

// Meta acompaña a las respuestas paginadas
type Meta struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
}

func (u User) Author() Author {
	return Author{Id: u.Id, Username: u.Username, Name: u.Name, AvatarUrl: u.AvatarUrl}
}

// DisplayName devuelve el nombre si existe y si no el nombre de usuario
func (a Author) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}
