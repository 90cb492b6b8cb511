// Package api is a typed client for the EdgeDesk sports-betting analytics
// API. Every call goes through one request choke-point that injects the
// bearer token, prefixes the API base path, and normalizes error bodies.
package api

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

	"github.com/edgedesk/edgedesk-go/pkg/metrics"
	"github.com/edgedesk/edgedesk-go/pkg/session"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the EdgeDesk API host.
	DefaultBaseURL = "https://api.edgedesk.io"

	// apiPrefix is prepended to every endpoint. Endpoints passed to
	// request must not carry it themselves.
	apiPrefix = "/api"

	defaultRateLimit = 10.0 // requests per second
	defaultBurst     = 5
)

// Client is an EdgeDesk API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	sessions   session.Store
	metrics    *metrics.ClientMetrics
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimit sets custom rate limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithSessionStore sets the session store the client reads its bearer
// token from and writes login/refresh credentials to.
func WithSessionStore(store session.Store) ClientOption {
	return func(c *Client) {
		c.sessions = store
	}
}

// WithMetrics attaches a metrics collector observing request counts and
// latencies.
func WithMetrics(m *metrics.ClientMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a new EdgeDesk API client. Without WithSessionStore
// the client runs anonymously against public endpoints.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter:  rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		sessions: session.NewMemoryStore(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Sessions returns the client's session store.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// HasToken reports whether a bearer token is currently stored.
func (c *Client) HasToken() bool {
	return c.sessions.Token() != ""
}

// request issues one API call. endpoint is relative (no apiPrefix), query
// may be nil, body is JSON-encoded when non-nil, extra headers win over
// the defaults. A 204 response leaves result untouched; any other 2xx is
// decoded into result when result is non-nil. Non-2xx responses return an
// *APIError carrying the normalized display message.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + apiPrefix + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	group := endpointGroup(endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.RequestDuration.WithLabelValues(method, group).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.RequestErrors.WithLabelValues(group, "transport").Inc()
		}
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(method, group, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		if c.metrics != nil {
			c.metrics.RequestErrors.WithLabelValues(group, "http").Inc()
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    normalizeErrorBody(resp.StatusCode, raw),
		}
	}

	if resp.StatusCode == http.StatusNoContent || result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	return c.request(ctx, http.MethodGet, endpoint, query, nil, nil, result)
}

func (c *Client) post(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.request(ctx, http.MethodPost, endpoint, nil, nil, body, result)
}

func (c *Client) put(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.request(ctx, http.MethodPut, endpoint, nil, nil, body, result)
}

func (c *Client) del(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	return c.request(ctx, http.MethodDelete, endpoint, query, nil, nil, result)
}

// endpointGroup extracts the resource family from an endpoint for metric
// labels: "/tracking/bets" -> "tracking".
func endpointGroup(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
