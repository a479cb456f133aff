package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

type field struct {
	name  string
	value string
}

type filePart struct {
	field    string
	filename string
	mime     string
	open     func() (io.ReadCloser, error)
}

// Form es un formulario multipart que conserva el orden de los campos
type Form struct {
	fields []field
	files  []filePart
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, field{name: name, value: value})
	return f
}

// File añade el contenido de r como fichero. El tipo se deduce de filename
func (f *Form) File(fieldName, filename string, r io.Reader) *Form {
	f.files = append(f.files, filePart{
		field:    fieldName,
		filename: filename,
		mime:     GuessMime(filename),
		open:     func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	})
	return f
}

// Path añade el fichero en path, que se abre al codificar el formulario
func (f *Form) Path(fieldName, path string) *Form {
	f.files = append(f.files, filePart{
		field:    fieldName,
		filename: filepath.Base(path),
		mime:     GuessMime(path),
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
	})
	return f
}

// Encode devuelve el cuerpo y el Content-Type con boundary
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", err
		}
	}

	for _, fp := range f.files {
		if err := writeFile(w, fp); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, fp filePart) error {
	r, err := fp.open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", fp.filename, err)
	}
	defer r.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(fp.field), escapeQuotes(fp.filename)))
	h.Set("Content-Type", fp.mime)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// GuessMime deduce el tipo de imagen por la extensión. Por defecto image/jpeg
func GuessMime(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "heic", "heif":
		return "image/heic"
	}
	return "image/jpeg"
}
