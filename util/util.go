package util

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

// FailOnError aborta el programa si hay error. Solo para arranque
func FailOnError(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func EncodeJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func DecodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func Encode64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func Decode64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
