package state

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxCaption    = 2200
	MaxPostImages = 10
	MaxName       = 50
	MaxBio        = 150
	MaxComment    = 1000
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameShort    = errors.New("username must be at least 3 characters")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email format is invalid")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordShort    = errors.New("password must be at least 6 characters")
	ErrNameRequired     = errors.New("name is required")
	ErrNoImages         = errors.New("add at least one photo to post")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSignup comprueba los campos de registro en el mismo orden que el formulario
func ValidateSignup(username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return ErrUsernameRequired
	case utf8.RuneCountInString(username) < 3:
		return ErrUsernameShort
	case email == "":
		return ErrEmailRequired
	case !emailRe.MatchString(email):
		return ErrEmailInvalid
	case password == "":
		return ErrPasswordRequired
	case utf8.RuneCountInString(password) < 6:
		return ErrPasswordShort
	}
	return nil
}

func ValidateProfile(name, bio string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if n := utf8.RuneCountInString(name); n > MaxName {
		return fmt.Errorf("name is too long (%d/%d)", n, MaxName)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(bio)); n > MaxBio {
		return fmt.Errorf("bio is too long (%d/%d)", n, MaxBio)
	}
	return nil
}

func ValidatePost(caption string, images []string) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	if len(images) > MaxPostImages {
		return fmt.Errorf("at most %d photos per post", MaxPostImages)
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(caption)); n > MaxCaption {
		return fmt.Errorf("caption is too long (%d/%d)", n, MaxCaption)
	}
	return nil
}

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeWebsite añade https:// si la dirección no trae esquema
func NormalizeWebsite(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || schemeRe.MatchString(url) {
		return url
	}
	return "https://" + url
}

// SplitPaths separa una lista de rutas escrita por el usuario (comas o saltos de línea)
func SplitPaths(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
