package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/julianstephens/petspa/internal/logger"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Client is a thin JSON-over-HTTP wrapper rooted at a base URL. Each call is
// a single request: no retries, no caching.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTP.Timeout = d
	}
}

// WithTransport replaces the underlying round tripper. The tracing wrapper is
// still applied on top.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.HTTP.Transport = otelhttp.NewTransport(rt)
	}
}

// New creates a client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("api: empty base url")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}

	c := &Client{
		HTTP: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET and decodes a JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return fmt.Errorf("api: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &TransportError{Method: method, Path: path, StatusCode: resp.StatusCode, Status: statusText(resp), Err: err}
	}

	logger.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 || !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// statusText returns the reason phrase, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
}
