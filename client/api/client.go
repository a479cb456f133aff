// Package api envuelve las llamadas HTTP a la API REST de la red social.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"social/util"
	"social/util/logging"
	"social/util/model"

	"github.com/google/uuid"
)

const (
	BasePath       = "/api/v1"
	DefaultTimeout = 15 * time.Second
)

// Error es la respuesta no 2xx de la API. Message sale del cuerpo cuando se puede
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf devuelve el código HTTP de un *Error envuelto en err, o 0
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// New crea un cliente para el servidor en baseURL (sin /api/v1)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/") + BasePath,
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Logger()
	}
	return c
}

// Do envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil)
func (c *Client) Do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return c.send(ctx, method, path, token, reader, headers, out)
}

// DoMultipart envía un formulario multipart. El Content-Type lo fija el propio
// formulario para que incluya el boundary
func (c *Client) DoMultipart(ctx context.Context, method, path, token string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", method, path, err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentType)
	return c.send(ctx, method, path, token, body, headers, out)
}

func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader, headers http.Header, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}

	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	c.log.Debug("request", "method", method, "path", path, "status", res.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Error{Status: res.StatusCode, Message: errorMessage(data, res.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// cuerpos que no son JSON en respuestas correctas se ignoran
	if err := util.DecodeJSON(bytes.NewReader(data), out); err != nil {
		c.log.Debug("ignoring undecodable body", "method", method, "path", path, "err", err)
	}
	return nil
}

func errorMessage(data []byte, status int) string {
	var body model.ErrorResp
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if len(body.Errors) > 0 {
			return strings.Join(body.Errors, ", ")
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}
