// Package scrape fetches listing pages from the catalog site and lifts raw
// products out of their HTML. It knows nothing about resolution; everything
// it returns is text exactly as found on the page.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// Client fetches listing pages over HTTP with a token-bucket rate limit,
// so a multi-page crawl never hammers the site.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	log     *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client for the listing site rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		baseURL: baseURL,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage retrieves one listing page and returns its HTML. Page 1 is the
// bare base URL; later pages append the page query parameter.
func (c *Client) FetchPage(ctx context.Context, page int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	url := c.pageURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("listing page %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	c.log.Debug("fetched listing page", "url", url, "bytes", len(body))

	return string(body), nil
}

func (c *Client) pageURL(page int) string {
	if page <= 1 {
		return c.baseURL
	}
	return c.baseURL + "?page=" + strconv.Itoa(page)
}
