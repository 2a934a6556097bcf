// Package gateway implements the REST client for the upstream service that
// holds durable SKU and order data. The console never writes local state on a
// failed gateway call; every transport error or non-2xx response is wrapped
// in httpx.ErrGatewayFailure so callers can tell the two apart.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skudeck/skudeck/internal/platform/cache"
	"github.com/skudeck/skudeck/internal/platform/httpx"
)

const (
	cacheKeyOrders = "gw:orders"
	cacheKeySKUs   = "gw:skus"
)

// Client wraps interactions with the remote data gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.ResponseCache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache attaches a short-TTL response cache for list calls.
func WithCache(rc *cache.ResponseCache) Option {
	return func(c *Client) { c.cache = rc }
}

// NewClient constructs a new gateway client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks if the remote gateway is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/orders", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrGatewayFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", httpx.ErrGatewayFailure, resp.StatusCode)
	}
	return nil
}

// do executes a request and decodes the JSON response into out when out is
// non-nil. The response body is returned raw for callers that cache it.
func (c *Client) do(ctx context.Context, method, path string, body, out any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", httpx.ErrGatewayFailure, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %v", httpx.ErrGatewayFailure, method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned status %d", httpx.ErrGatewayFailure, method, path, resp.StatusCode)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
		}
	}
	return data, nil
}

// listCached serves path from the response cache when possible.
func (c *Client) listCached(ctx context.Context, key, path string, out any) error {
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil {
			return json.Unmarshal(data, out)
		}
	}
	data, err := c.do(ctx, http.MethodGet, path, nil, out)
	if err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(ctx, key, data)
	}
	return nil
}

// invalidate drops the list cache entry after a mutation.
func (c *Client) invalidate(ctx context.Context, key string) {
	if c.cache != nil {
		_ = c.cache.Invalidate(ctx, key)
	}
}
