package repository

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveUpload guarda el fichero y devuelve el nombre con el que se sirve
func SaveUpload(db *Database, filename, contentType string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext

	db.mu.Lock()
	db.Uploads[name] = Upload{ContentType: contentType, Data: data}
	db.mu.Unlock()
	return name
}

func GetUpload(db *Database, name string) (Upload, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	u, ok := db.Uploads[name]
	return u, ok
}
