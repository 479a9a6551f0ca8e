// Package registry is a client for the business registry's open-data
// company search API. Lookups retry on rate limiting and classify every
// other failure into a typed error.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// maxResponseSize limits the response body read. A single-company search
// result is a few kilobytes; anything near this limit is garbage.
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// DefaultBaseURL is the registry's public open-data API root.
const DefaultBaseURL = "https://avoindata.prh.fi/opendata-ytj-api/v3"

// SleepFunc waits for d or until ctx is cancelled. Injectable so retry
// behavior is testable without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client looks up company registrations by business identifier.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig RetryConfig
	limiter     *rate.Limiter
	logger      *slog.Logger
	sleep       SleepFunc
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryConfig sets the rate-limit retry configuration.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithRateLimit paces requests at most one per interval. Zero disables
// client-side pacing.
func WithRateLimit(interval time.Duration) ClientOption {
	return func(client *Client) {
		if interval <= 0 {
			client.limiter = nil
			return
		}
		client.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithSleep replaces the wait between retry attempts.
func WithSleep(fn SleepFunc) ClientOption {
	return func(client *Client) {
		client.sleep = fn
	}
}

// NewClient creates a registry client. An empty baseURL selects the public
// open-data endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:     baseURL,
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  slog.Default(),
		sleep:   sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup fetches the registration record matching businessID. Only HTTP 429
// responses are retried, with a fixed delay between attempts; every other
// failure surfaces immediately. Exactly one match is required.
func (c *Client) Lookup(ctx context.Context, businessID string) (*Company, error) {
	for attempt := 1; attempt <= c.retryConfig.MaxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &ClientError{Err: err}
			}
		}

		company, rateLimited, err := c.doLookup(ctx, businessID)
		if err == nil {
			return company, nil
		}
		if !rateLimited {
			return nil, err
		}

		if attempt < c.retryConfig.MaxAttempts {
			c.logger.Debug("Registry rate limited, retrying",
				"business_id", businessID,
				"attempt", attempt,
				"max_attempts", c.retryConfig.MaxAttempts,
				"delay", c.retryConfig.Delay)

			if err := c.sleep(ctx, c.retryConfig.Delay); err != nil {
				return nil, &ClientError{Err: err}
			}
		}
	}

	return nil, &RetryExhaustedError{Attempts: c.retryConfig.MaxAttempts}
}

// doLookup performs a single search request. The bool reports whether the
// failure was a 429 and worth retrying.
func (c *Client) doLookup(ctx context.Context, businessID string) (*Company, bool, error) {
	reqURL := fmt.Sprintf("%s/companies?businessId=%s", c.baseURL, url.QueryEscape(businessID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, &ClientError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Sending registry request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &ClientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, false, &ClientError{Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, &ClientError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, &ClientError{StatusCode: resp.StatusCode}
	}

	var search SearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, false, &ParseError{Err: err}
	}

	if search.TotalResults != 1 {
		return nil, false, &LookupError{BusinessID: businessID, TotalResults: search.TotalResults}
	}
	if len(search.Companies) == 0 {
		return nil, false, &ParseError{Err: errors.New("totalResults is 1 but response carries no company")}
	}

	return &search.Companies[0], false, nil
}

// sleepContext is the default SleepFunc.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
