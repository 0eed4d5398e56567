// Package api provides the authenticated HTTP client for the PerforMate
// backend. Every call attaches the bearer credential through the oauth2
// transport; non-success statuses come back as *StatusError with the
// server-provided message when one exists.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Client issues JSON and multipart requests against a single base URL.
type Client struct {
	base string
	http *http.Client
	log  zerolog.Logger
}

// New creates a client for the given base URL. When src is non-nil the
// underlying transport injects "Authorization: Bearer <token>" on every
// request; a nil src produces an unauthenticated client (login,
// registration, token refresh).
func New(baseURL string, src oauth2.TokenSource, log zerolog.Logger) *Client {
	httpClient := http.DefaultClient
	if src != nil {
		httpClient = oauth2.NewClient(context.Background(), src)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
		log:  log,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.base }

// GetJSON issues a GET and decodes the response body into out.
// out may be nil when the body is irrelevant.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

// PostMultipart uploads data as a single file field and decodes the JSON
// response into out. Used by the voice turn upload.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := newStatusError(resp.StatusCode, resp.Status, data)
		c.log.Debug().Int("status", resp.StatusCode).Str("url", req.URL.String()).Str("message", serr.Message).Msg("non-success response")
		return serr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
