// Package storage guarda el token de sesión entre ejecuciones del cliente.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"social/util/logging"
)

const Key = "auth_token"

var ErrNoToken = errors.New("no token stored")

type TokenStore interface {
	Save(token string) error
	Get() (string, error)
	Delete() error
}

// FileStore guarda el token en claro en un fichero con permisos 0600
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, Key)}
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

func (s *FileStore) Get() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

type fallbackStore struct {
	primary   TokenStore
	secondary TokenStore
}

// Fallback usa primary y recurre a secondary cuando primary falla o no tiene token
func Fallback(primary, secondary TokenStore) TokenStore {
	return &fallbackStore{primary: primary, secondary: secondary}
}

func (s *fallbackStore) Save(token string) error {
	if err := s.primary.Save(token); err != nil {
		logging.Warn("secure token store unavailable, using fallback", "err", err)
		return s.secondary.Save(token)
	}
	return nil
}

func (s *fallbackStore) Get() (string, error) {
	token, err := s.primary.Get()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrNoToken) {
		logging.Warn("secure token store read failed, using fallback", "err", err)
	}
	return s.secondary.Get()
}

func (s *fallbackStore) Delete() error {
	if err := s.primary.Delete(); err != nil {
		logging.Warn("secure token store delete failed", "err", err)
	}
	return s.secondary.Delete()
}
