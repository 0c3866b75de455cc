// Package remote is the HTTP client of the portfolio service REST API.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/haierkeys/portfolio-dash/pkg/limiter"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"github.com/juju/ratelimit"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config 远程接口配置
type Config struct {
	BaseURL   string        `yaml:"base-url" default:"http://127.0.0.1:9100"`
	Timeout   time.Duration `yaml:"timeout" default:"10s"`
	RateLimit float64       `yaml:"rate-limit" default:"10"` // requests per second, 0 disables
	RateBurst int64         `yaml:"rate-burst" default:"5"`
}

// TokenSource supplies the bearer token for each request
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken always returns the same token
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// StatusError is returned for every non-2xx response
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Code       int    // service error code, 0 when the body carried none
	Message    string // server message or the HTTP status text
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Client 远程接口客户端
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	bucket  *ratelimit.Bucket
	logger  *zap.Logger
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient 创建客户端
func NewClient(cfg Config, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		logger:  zap.NewNop(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.bucket = ratelimit.NewBucketWithRate(cfg.RateLimit, burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request. in is encoded as the JSON body when non-nil; out
// receives the decoded 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := limiter.Wait(ctx, c.bucket); err != nil {
		return errors.Wrap(err, "rate limit")
	}

	var body io.Reader
	if in != nil {
		b, err := sonic.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return errors.Wrap(err, "read token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "%s %s: read body", method, path)
	}

	c.logger.Debug("remote call",
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldPath, path),
		zap.Int(logger.FieldStatus, resp.StatusCode),
		zap.Duration(logger.FieldDuration, time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "%s %s: decode response", method, path)
	}
	return nil
}

// errorBody covers both the coded error envelope and a bare {"error": "..."}
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details"`
}

func newStatusError(method, path string, status int, raw []byte) *StatusError {
	e := &StatusError{Method: method, Path: path, StatusCode: status}
	var body errorBody
	if err := sonic.Unmarshal(raw, &body); err == nil {
		e.Code = body.Code
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Error
		}
		if d := detailsText(body.Details); d != "" {
			e.Message += ": " + d
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func detailsText(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, p := range d {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
