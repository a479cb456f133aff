package model

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type SignupUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// SignupRequest va anidado: el backend espera { "user": {...} }
type SignupRequest struct {
	User SignupUser `json:"user"`
}

type CommentBody struct {
	Body string `json:"body"`
}

type CommentRequest struct {
	Comment CommentBody `json:"comment"`
}

// ErrorResp es el cuerpo de error que devuelve la API, con un mensaje o una lista
type ErrorResp struct {
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type PostsResp struct {
	Posts []Post `json:"posts"`
	Meta  *Meta  `json:"meta,omitempty"`
}

type CommentsResp struct {
	Comments []Comment `json:"comments"`
	Meta     *Meta     `json:"meta,omitempty"`
}

type UsersResp struct {
	Users []User `json:"users"`
	Meta  *Meta  `json:"meta,omitempty"`
}
