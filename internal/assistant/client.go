// ABOUTME: HTTP client for the course-search assistant service
// ABOUTME: Decodes the {success, data, error} envelope and classifies failures

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the service address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultTimeout bounds every request made by the client.
	DefaultTimeout = 60 * time.Second
	// DefaultUserAgent identifies the client to the service.
	DefaultUserAgent = "coursechat/1.0"
)

// Client talks to the assistant service over HTTP. It is safe for concurrent
// use. Construct one per process and inject it where needed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithHTTPClient supplies the underlying HTTP client. Its Timeout is replaced
// only when WithTimeout is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithUserAgent overrides DefaultUserAgent. An empty value keeps the default.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}

	o := clientOptions{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	if o.timeout > 0 {
		clone := *hc
		clone.Timeout = o.timeout
		hc = &clone
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		userAgent:  o.userAgent,
		logger:     o.logger.With("component", "assistant"),
	}, nil
}

// BaseURL returns the service address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the response wrapper used by every service endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error,omitempty"`
}

// call performs a request and unwraps the envelope into T.
func call[T any](ctx context.Context, c *Client, op, method, path string, query url.Values, body any) (*T, error) {
	resp, err := c.do(ctx, op, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(op, 0, "", err)
	}

	var env envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = env.Error
		}
		return nil, c.transportError(op, resp.StatusCode, msg, nil)
	}
	if decodeErr != nil {
		c.logger.Warn("malformed response", "op", op, "error", decodeErr)
		return nil, &ProtocolError{Message: fmt.Sprintf("%s: malformed response", op)}
	}
	if !env.Success || env.Data == nil {
		c.logger.Warn("service reported failure", "op", op, "error", env.Error)
		return nil, &ProtocolError{Message: env.Error}
	}

	return env.Data, nil
}

// do builds and sends a request, logging it the way the front end did.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(op, 0, "", err)
	}
	return resp, nil
}

func (c *Client) transportError(op string, status int, msg string, err error) *TransportError {
	te := &TransportError{Op: op, StatusCode: status, Message: msg, Err: err}
	if err != nil {
		var netErr net.Error
		te.timeout = errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
	}
	c.logger.Warn("api response error",
		"op", op,
		"status", status,
		"message", msg,
		"error", err)
	return te
}
