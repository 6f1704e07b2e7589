package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CSRFHeader carries the anti-forgery token on every request except the status poll.
const CSRFHeader = "X-CSRF-Token"

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20 // 1 MB
)

// Observer receives one callback per completed device request.
type Observer interface {
	ObserveRequest(method, path string, kind ResultKind, status int, elapsed time.Duration)
}

// Client is the single transport to the device's HTTP API.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithObserver attaches a request observer (metrics).
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient builds a client rooted at baseURL, e.g. "http://192.168.1.40".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse device url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("device url %q must include scheme and host", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request describes one exchange. At most one of Form and JSON is set.
type Request struct {
	Method string
	Path   string
	Form   url.Values
	JSON   any
	CSRF   string
}

// Get issues a GET. An empty token sends no CSRF header.
func (c *Client) Get(ctx context.Context, path, csrf string) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, CSRF: csrf})
}

// PostForm issues a URL-encoded POST.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, csrf string) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Form: form, CSRF: csrf})
}

// PostJSON issues a POST with v serialized as the JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, v any, csrf string) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: v, CSRF: csrf})
}

// Post issues a body-less POST.
func (c *Client) Post(ctx context.Context, path, csrf string) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, CSRF: csrf})
}

// Do performs the exchange and classifies the outcome. It never returns a
// Go error; failures are carried in Result.Err.
func (c *Client) Do(ctx context.Context, r Request) (res Result) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveRequest(r.Method, r.Path, res.Kind, res.Status, time.Since(start))
		}
	}()

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return errResult(0, nil, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errResult(0, nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, r.Method, r.Path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errResult(resp.StatusCode, nil, fmt.Errorf("%w: read %s body: %v", ErrTransport, r.Path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errResult(resp.StatusCode, body, &StatusError{Code: resp.StatusCode, Body: body})
	}
	return okResult(resp.StatusCode, body)
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = contentTypeForm
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s body: %v", ErrValidation, r.Path, err)
		}
		body = bytes.NewReader(b)
		contentType = contentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(r.Path), body)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s %s: %v", ErrTransport, method, r.Path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.CSRF != "" {
		req.Header.Set(CSRFHeader, r.CSRF)
	}
	return req, nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return u.String()
}
