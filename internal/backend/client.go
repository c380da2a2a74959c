package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/registrar/internal/cache"
	"github.com/rshade/registrar/internal/logging"
	"github.com/rshade/registrar/internal/table"
)

const (
	apiPrefix        = "api"
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 4 << 10
	maxBodySize      = 32 << 20

	opVersion = "version"
)

// Cache stores response bodies. *cache.FileStore satisfies it.
type Cache interface {
	Get(key string) (*cache.Entry, error)
	Set(key, path string, data json.RawMessage) error
}

// Client talks to the records service. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	cache   Cache
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache caches successful GET responses in store. A nil store disables caching.
func WithCache(store Cache) Option {
	return func(c *Client) { c.cache = store }
}

type noCacheKey struct{}

// WithoutCache returns a context whose requests skip cached responses. Fresh
// responses are still written back to the cache.
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, noCacheKey{}, true)
}

// CacheBypassed reports whether ctx was derived from WithoutCache.
func CacheBypassed(ctx context.Context) bool {
	bypass, _ := ctx.Value(noCacheKey{}).(bool)
	return bypass
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend URL %q must be http or https", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
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

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// List fetches every record of resource, optionally filtered by query.
func (c *Client) List(ctx context.Context, resource, query string) ([]table.Row, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	body, err := c.get(ctx, "list", []string{resource}, q)
	if err != nil {
		return nil, err
	}
	rows, err := table.DecodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s list: %w", ErrBadResponse, resource, err)
	}
	return rows, nil
}

// Related fetches the records of resource whose field equals value.
func (c *Client) Related(ctx context.Context, resource, field, value string) ([]table.Row, error) {
	body, err := c.get(ctx, "related", []string{resource}, url.Values{field: {value}})
	if err != nil {
		return nil, err
	}
	rows, err := table.DecodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s by %s: %w", ErrBadResponse, resource, field, err)
	}
	return rows, nil
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, resource, id string) (table.Row, error) {
	body, err := c.get(ctx, "get", []string{resource, id}, nil)
	if err != nil {
		return table.Row{}, err
	}
	var row table.Row
	if err = json.Unmarshal(body, &row); err != nil {
		return table.Row{}, fmt.Errorf("%w: %s/%s: %w", ErrBadResponse, resource, id, err)
	}
	return row, nil
}

// get performs a GET on /api/<segments...>, consulting the cache first unless
// ctx bypasses it.
func (c *Client) get(ctx context.Context, op string, segments []string, q url.Values) ([]byte, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "backend")

	u := c.endpoint(segments...)
	key := cache.GenerateKey(cache.KeyParams{Operation: op, Path: u.String(), Query: q})
	cacheable := c.cache != nil && op != opVersion
	if cacheable && !CacheBypassed(ctx) {
		entry, err := c.cache.Get(key)
		switch {
		case err == nil:
			log.Debug().Ctx(ctx).Str("path", u.Path).Msg("cache hit")
			return entry.Data, nil
		case !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) &&
			!errors.Is(err, cache.ErrCacheDisabled):
			log.Warn().Ctx(ctx).Err(err).Msg("cache read failed")
		}
	}

	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("path", u.Path).Msg("request failed")
		return nil, fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("path", u.Path).
		Str("query", u.RawQuery).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp, u.Path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u.Path, err)
	}

	if cacheable {
		if setErr := c.cache.Set(key, u.Path, body); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
			log.Warn().Ctx(ctx).Err(setErr).Msg("cache write failed")
		}
	}
	return body, nil
}

func (c *Client) endpoint(segments ...string) *url.URL {
	return c.baseURL.JoinPath(append([]string{apiPrefix}, segments...)...)
}

// readAPIError builds an APIError from an error response. JSON bodies of the
// form {"error": "..."} or {"message": "..."} supply the message.
func readAPIError(resp *http.Response, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	apiErr := &APIError{StatusCode: resp.StatusCode, Path: path}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
