// Package gateway talks to the scoring backend over HTTP/JSON.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Config holds the connection settings of a Client.
type Config struct {
	BaseURL string
	// Timeout bounds every call, including reading the response body.
	Timeout time.Duration
	// MaxAttempts applies to GET requests only; POSTs are sent once.
	MaxAttempts int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8000",
		Timeout:     15 * time.Second,
		MaxAttempts: 1,
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryOptions overrides the backoff used for GET retries.
// MaxAttempts always comes from Config.
func WithRetryOptions(opts common.RetryOptions) Option {
	return func(c *Client) {
		c.retry = opts
	}
}

// Client is the typed gateway over the backend's endpoints.
type Client struct {
	httpClient *http.Client
	cfg        Config
	retry      common.RetryOptions
}

// New creates a gateway client. Zero fields in cfg take their defaults.
func New(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = def.MaxAttempts
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		retry: common.RetryOptions{
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			Multiplier:   2,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.retry.MaxAttempts = cfg.MaxAttempts
	return c
}

// BaseURL returns the backend base URL the client targets.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// call performs one logical request, retrying GETs when configured.
// out may be nil when the response body is not needed.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	if method != http.MethodGet || c.cfg.MaxAttempts == 1 {
		return c.do(ctx, op, method, path, body, out)
	}
	return common.WithRetry(ctx, func() error {
		return c.do(ctx, op, method, path, body, out)
	}, c.retry)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	requestID := uuid.NewString()
	logger := slog.With("op", op, "method", method, "path", path, "request_id", requestID)
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			logger.Error("Failed to encode request", "error", err)
			return common.NewValidationError("request", "cannot be encoded: "+err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := &common.TransportError{Op: op, Err: err}
		logger.Error("Backend request failed", "error", err, "timeout", terr.Timeout())
		return terr
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &common.TransportError{Op: op, Err: err}
		logger.Error("Failed to read backend response", "status", resp.StatusCode, "error", err)
		return terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &common.HTTPError{Op: op, StatusCode: resp.StatusCode, Detail: errorDetail(raw)}
		logger.Error("Backend returned an error", "status", resp.StatusCode, "detail", herr.Detail)
		return herr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			herr := &common.HTTPError{Op: op, StatusCode: resp.StatusCode, Detail: string(raw)}
			logger.Error("Undecodable backend response", "status", resp.StatusCode, "error", err)
			return herr
		}
	}

	logger.Debug("Backend request completed", "status", resp.StatusCode, "latency", time.Since(start))
	return nil
}

// errorDetail keeps the body verbatim unless it is JSON carrying a detail or
// error member, in which case only that member is kept.
func errorDetail(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed)
	}
	doc := gjson.ParseBytes(trimmed)
	for _, key := range []string{"detail", "error"} {
		member := doc.Get(key)
		if !member.Exists() {
			continue
		}
		if member.Type == gjson.String {
			return member.Str
		}
		return member.Raw
	}
	return string(trimmed)
}
