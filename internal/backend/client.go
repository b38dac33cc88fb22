package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

const (
	DefaultTimeout = 5 * time.Second
	maxErrorBody   = 4 << 10
)

// Client talks JSON over HTTP to the content API and implements every source,
// store and writer the site consumes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     interfaces.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	out      any
	resource resource
	// single marks a lookup whose 2xx response must carry an object.
	single bool
}

func (c *Client) do(ctx context.Context, req call) error {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithContext(ctx).Debug("backend.request.failed", "method", req.method, "path", req.path, "error", err)
		return fmt.Errorf("backend: %s %s: %w", req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.WithContext(ctx).Debug("backend.request.completed",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode == http.StatusNotFound {
		if nf := req.resource.notFound(); nf != nil {
			return nf
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr apiError
		message := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.text() != "" {
			message = apiErr.text()
		}
		return &StatusError{Method: req.method, Path: req.path, StatusCode: resp.StatusCode, Message: message}
	}

	if req.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
		if errors.Is(err, io.EOF) {
			if req.single {
				return fmt.Errorf("backend: %s %s: %w", req.method, req.path, ErrEmptyResponse)
			}
			return nil
		}
		return fmt.Errorf("backend: decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

func segment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
