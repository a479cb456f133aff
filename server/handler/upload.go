package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"social/server/etc"
	"social/server/repository"

	"github.com/gorilla/mux"
)

// saveFiles guarda los ficheros subidos y devuelve sus URLs públicas
func saveFiles(req *http.Request, files []*multipart.FileHeader) ([]string, error) {
	data := etc.GetDb(req)
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", fh.Filename, err)
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fh.Filename, err)
		}
		name := repository.SaveUpload(data, fh.Filename, fh.Header.Get("Content-Type"), b)
		urls = append(urls, etc.UploadURL(req, name))
	}
	return urls, nil
}

func UploadHandler(w http.ResponseWriter, req *http.Request) {
	up, ok := repository.GetUpload(etc.GetDb(req), mux.Vars(req)["name"])
	if !ok {
		http.NotFound(w, req)
		return
	}
	if up.ContentType != "" {
		w.Header().Set("Content-Type", up.ContentType)
	}
	w.Write(up.Data)
}
