// Package api is the authenticated gateway to the inventario backend. Every
// call attaches the persisted bearer token and interprets authorization
// failures in one place: a 401 with an expiry marker clears the session and
// comes back as ErrSessionExpired, any other 401 as ErrUnauthorized, and
// everything else non-2xx (or a network failure) as *RequestFailedError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"inventario-cli/internal/session"
)

// maxErrBody caps how much of an error response body we read looking for a
// structured detail.
const maxErrBody = 64 << 10

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Sessions   session.Store
	Log        zerolog.Logger
}

func New(baseURL string, sessions session.Store, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Sessions:   sessions,
		Log:        log,
	}
}

// apiError is FastAPI's error envelope.
type apiError struct {
	Detail string `json:"detail"`
}

// do performs one authenticated call. body (when non-nil) is JSON-encoded;
// the response body is decoded into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestFailedError{Method: method, Path: path, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return &RequestFailedError{Method: method, Path: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	sess, err := c.Sessions.Load()
	if err != nil {
		return &RequestFailedError{Method: method, Path: path, Err: err}
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return &RequestFailedError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		detail := readDetail(resp.Body)
		if strings.Contains(strings.ToLower(detail), "expired") {
			// The credential is gone for good; drop the persisted session so
			// the next start comes up unauthenticated.
			_ = c.Sessions.Clear()
			c.Log.Info().Str("method", method).Str("path", path).Msg("session expired, cleared store")
			return ErrSessionExpired
		}
		c.Log.Debug().Str("method", method).Str("path", path).Str("detail", detail).Msg("unauthorized")
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readDetail(resp.Body)
		c.Log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("detail", detail).Msg("request rejected")
		return &RequestFailedError{Method: method, Path: path, Status: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestFailedError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
		}
	}
	c.Log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request ok")
	return nil
}

// readDetail extracts FastAPI's {"detail": "..."} from an error body,
// falling back to the raw text when the body is not that shape.
func readDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrBody))
	if err != nil {
		return ""
	}
	var ae apiError
	if err := json.Unmarshal(b, &ae); err == nil && ae.Detail != "" {
		return ae.Detail
	}
	return strings.TrimSpace(string(b))
}
