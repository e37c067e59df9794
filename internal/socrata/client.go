// Package socrata connects to Socrata open data APIs, setting the X-App-Token
// header on every request. See https://dev.socrata.com/docs/app-tokens.html.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
	"github.com/IBM-i2/analyze-connect/internal/metrics"
)

// TokenHeader carries the application token.
const TokenHeader = "X-App-Token"

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Client issues GET requests against one dataset. It is safe for concurrent
// use; its configuration is fixed at construction.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. A non-positive rps
// leaves the client unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for baseURL. Both baseURL and apiToken are
// required.
func NewClient(baseURL, apiToken string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, &apperr.ConfigurationError{Field: "baseUrl"}
	}
	if strings.TrimSpace(apiToken) == "" {
		return nil, &apperr.ConfigurationError{Field: "apiToken"}
	}

	c := &Client{
		baseURL: baseURL,
		token:   apiToken,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get sends one request built from q and decodes the JSON body into out.
// A 403 answer yields an *apperr.AuthError, any other non-2xx answer an
// *apperr.UpstreamError. There is exactly one attempt per call.
func (c *Client) Get(ctx context.Context, q Query, out interface{}) (err error) {
	done := metrics.TimeUpstream(opName(q))
	defer func() { done(err == nil) }()

	rawQuery, err := q.Encode()
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}
	requestURL := c.baseURL + rawQuery

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &apperr.UpstreamError{Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(TokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &apperr.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("socrata request",
		"query", rawQuery,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode == http.StatusForbidden {
		return &apperr.AuthError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperr.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.UpstreamError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// opName labels the metrics of a query by whether it filters.
func opName(q Query) string {
	if strings.Contains(q.Path, "$where") {
		return "filtered"
	}
	return "unfiltered"
}
