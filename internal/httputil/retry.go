// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by the source adapters:
// polite retries on HTTP 429 and per-source rate limiting.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryAfter caps how long a server-supplied Retry-After may stall us.
const maxRetryAfter = 30 * time.Second

// Client executes requests for one source: it waits on the source's rate
// limiter before every attempt and retries HTTP 429 with backoff.
type Client struct {
	HTTP       *http.Client
	Limiter    *RateLimiter
	MaxRetries int
	Logger     zerolog.Logger
}

// NewClient returns a Client with a rate limiter of ratePerSecond (burst 1).
// A non-positive rate disables limiting.
func NewClient(httpClient *http.Client, ratePerSecond float64, maxRetries int, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	var limiter *RateLimiter
	if ratePerSecond > 0 {
		limiter = NewRateLimiter(ratePerSecond, 1)
	}
	return &Client{
		HTTP:       httpClient,
		Limiter:    limiter,
		MaxRetries: maxRetries,
		Logger:     logger,
	}
}

// Do sends req, honouring the rate limiter and retry policy.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return doWithRetry(ctx, c.HTTP, req, c.MaxRetries, c.Limiter, c.Logger)
}

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with exponential backoff starting at RetryBaseDelay. A
// Retry-After header in seconds overrides the computed delay, up to 30s.
//
// maxRetries <= 0 disables retrying. On each 429 the response body is
// drained and closed before sleeping. If the context is cancelled during a
// backoff wait the function returns ctx.Err(). After exhausting retries the
// last 429 response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return doWithRetry(ctx, client, req, maxRetries, nil, zerolog.Nop())
}

func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, limiter *RateLimiter, logger zerolog.Logger) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries: return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		backoff := retryDelay(resp, attempt)

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Debug().
			Str("url", req.URL.Redacted()).
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("rate limited, retrying")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryDelay returns the Retry-After delay if the server sent one in
// seconds, else the exponential backoff for attempt.
func retryDelay(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			d := time.Duration(secs) * time.Second
			if d > maxRetryAfter {
				d = maxRetryAfter
			}
			return d
		}
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
