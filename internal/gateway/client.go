// internal/gateway/client.go

// Package gateway is the single HTTP calling surface for the backend REST
// API. Every outbound request carries the session's bearer token, read fresh
// from the session store at dispatch time, and every 401 response clears the
// session before the error reaches the caller. Requests are fire-once: no
// retries, no backoff.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"voiceai-web/internal/pkg/xerrors"
	"voiceai-web/internal/session"

	"go.uber.org/zap"
)

const genericErrMsg = "Something went wrong. Please try again."

type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, store *session.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		logger:  logger,
	}
}

// envelope is the normalized backend response shape. The backend answers
// some routes with {success,data,error} and others with {message,...} at the
// top level; both are adapted here so call sites see one convention.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *envelope) failureMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return genericErrMsg
}

// APIError is a non-2xx backend answer with its server-provided message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (c *Client) get(ctx context.Context, sid, path string, out any) error {
	return c.do(ctx, sid, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, sid, path string, body, out any) error {
	return c.do(ctx, sid, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, sid, path string, body, out any) error {
	return c.do(ctx, sid, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, sid, path string, body, out any) error {
	return c.do(ctx, sid, http.MethodDelete, path, body, out)
}

func (c *Client) do(ctx context.Context, sid, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return xerrors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return xerrors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, sid, req)

	return c.send(ctx, sid, req, out)
}

// authorize decorates the request with the current bearer token. The token
// is read from storage on every dispatch, never cached on the client.
func (c *Client) authorize(ctx context.Context, sid string, req *http.Request) {
	if token := c.store.Token(ctx, sid); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(ctx context.Context, sid string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s", xerrors.ErrTransport, genericErrMsg)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", xerrors.ErrTransport, genericErrMsg)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body is tolerated on success paths with no out value
		// and surfaced as a transport error otherwise.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 && out != nil {
			return fmt.Errorf("%w: %s", xerrors.ErrTransport, genericErrMsg)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Global session invalidation. The session is gone before the
		// caller sees the error; callers must not attempt recovery.
		c.logger.Info("backend returned 401, clearing session",
			zap.String("path", req.URL.Path),
		)
		c.store.Logout(ctx, sid)
		return fmt.Errorf("%w: %s", xerrors.ErrUnauthorized, env.failureMessage())

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", xerrors.ErrNotFound, env.failureMessage())

	case resp.StatusCode >= 400:
		return &APIError{Status: resp.StatusCode, Message: env.failureMessage()}

	case env.Success != nil && !*env.Success:
		// 2xx body reporting failure; normalize to an API error.
		return &APIError{Status: resp.StatusCode, Message: env.failureMessage()}
	}

	if out == nil {
		return nil
	}

	// Wrapped convention: payload sits under data. Direct convention: the
	// whole body is the payload.
	payload := raw
	if len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s", xerrors.ErrTransport, genericErrMsg)
	}
	return nil
}

// upload sends a single file as multipart form data.
func (c *Client) upload(ctx context.Context, sid, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return xerrors.Wrap(err, "build multipart request")
	}
	if _, err := io.Copy(part, file); err != nil {
		return xerrors.Wrap(err, "read upload")
	}
	if err := mw.Close(); err != nil {
		return xerrors.Wrap(err, "finish multipart request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return xerrors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(ctx, sid, req)

	return c.send(ctx, sid, req, out)
}

// FetchAudio streams an audio resource (a presigned preview or download URL
// issued by the backend). The caller owns the returned body and must close
// it on every exit path.
func (c *Client) FetchAudio(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", xerrors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", xerrors.ErrTransport, genericErrMsg)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", &APIError{Status: resp.StatusCode, Message: genericErrMsg}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return resp.Body, contentType, nil
}
