package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
	"github.com/gympro/gympro-client/internal/storage"
	"github.com/gympro/gympro-client/internal/transcode"
)

func init() {
	// the backend expects money as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Client talks to the backend REST API. There is no retry, no backoff and
// no client side timeout: a call either returns decoded data or fails once.
type Client struct {
	baseURL        string
	http           *http.Client
	store          storage.Storage
	log            *slog.Logger
	metrics        *metrics.Metrics
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option  { return func(c *Client) { c.http = h } }
func WithLogger(l *slog.Logger) Option      { return func(c *Client) { c.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(c *Client) { c.metrics = m } }

// OnUnauthorized registers the hook run after a 401 wiped the credentials,
// normally a navigation to the login route.
func OnUnauthorized(fn func()) Option { return func(c *Client) { c.onUnauthorized = fn } }

func New(baseURL string, store storage.Storage, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		store:   store,
		log:     logger.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends body (camelCase, may be nil) and decodes the response into out
// (may be nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := transcode.Encode(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	token, ok, err := c.store.Get(ctx, storage.KeyToken)
	if err != nil {
		c.log.Warn("token lookup failed", "err", err)
	} else if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	route := routeLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveAPI(method, route, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Error("api request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.ObserveAPI(method, route, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %v", ErrTransport, method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized(ctx)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
		var payload map[string]any
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = serverMessage(payload)
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.log.Debug("api error response", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
		return apiErr
	}

	if err := transcode.Decode(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context) {
	if err := storage.Clear(context.WithoutCancel(ctx), c.store); err != nil {
		c.log.Error("clear credentials failed", "err", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
