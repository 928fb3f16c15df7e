// Package client talks to the course-data API.
//
// It provides the read side used by the roadmap and browser pages
// (FetchRoadmap, FetchListings) and the write side used by inline edits
// (UpdateCourse). Reads retry transient failures with backoff; the update
// is a single at-most-once write whose failure the UI never depends on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/httputil"
	"github.com/utrgv-dp/roadmap/pkg/observability"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

// Client provides HTTP access to the course-data API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the API at baseURL (e.g. "http://localhost:5001").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a GET with retry and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedResponse, err, "decoding %s", path)
		}
		return nil
	})
}

// putJSON performs a PUT with a JSON body, decoding the response into v.
// No retry: updates are at-most-once by design.
func (c *Client) putJSON(ctx context.Context, path string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "encoding %s body", path)
	}
	body, err := c.do(ctx, http.MethodPut, path, data)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedResponse, err, "decoding %s", path)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (io.ReadCloser, error) {
	u := c.baseURL + path
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	host := ""
	if parsed, perr := url.Parse(u); perr == nil {
		host = parsed.Host
	}
	observability.HTTP().OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, path),
		}
	}
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "not found")
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}
