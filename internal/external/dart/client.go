// Package dart is the OpenDART API client: corp code catalog download,
// single-company key accounts, company profiles and disclosure lists.
package dart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/dartfin/pkg/config"
	"github.com/wonny/dartfin/pkg/httputil"
	"github.com/wonny/dartfin/pkg/logger"
	"github.com/wonny/dartfin/pkg/redis"
)

// DefaultBaseURL is the OpenDART API root
const DefaultBaseURL = "https://opendart.fss.or.kr/api"

// Client handles communication with DART (Data Analysis, Retrieval and Transfer System) API
// ⭐ SSOT: DART API 호출은 이 클라이언트에서만
type Client struct {
	http    *httputil.Client
	logger  *logger.Logger
	apiKey  string
	baseURL string
	retry   retryPolicy
}

type retryPolicy struct {
	attempts int
	initial  time.Duration
	max      time.Duration
}

var defaultRetry = retryPolicy{
	attempts: 3,
	initial:  500 * time.Millisecond,
	max:      5 * time.Second,
}

// NewClient creates a DART client from config.
// DART API requires legacy TLS configuration (RSA key exchange).
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	hc := httputil.New(cfg, log).
		WithTransport(newLegacyCompatibleTransport()).
		DisableRetry() // 재시도는 withRetry에서 한 번만
	if cfg.DART.RatePerSec > 0 {
		hc.WithLocalLimit(float64(cfg.DART.RatePerSec), 1)
	}

	return NewClientWithHTTP(cfg.DART.APIKey, cfg.DART.BaseURL, hc, log)
}

// NewClientWithHTTP creates a client over an existing HTTP client (tests, custom transports)
func NewClientWithHTTP(apiKey, baseURL string, hc *httputil.Client, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		http:    hc,
		logger:  log,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   defaultRetry,
	}
}

// WithSharedLimit throttles through the Redis sliding window shared by all processes
func (c *Client) WithSharedLimit(limiter *redis.RateLimiter) *Client {
	c.http.WithRateLimiter(limiter, redis.DARTRateLimit)
	return c
}

// fetch performs one GET against endpoint and returns the raw body of a 200 response
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("crtfc_key", c.apiKey)

	status, _, body, err := c.http.GetBytes(ctx, c.baseURL+"/"+endpoint+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("HTTP request %s: %w", endpoint, err)
	}
	if status != http.StatusOK {
		return nil, &StatusError{Endpoint: endpoint, Code: status}
	}

	return body, nil
}

// withRetry runs fn with exponential backoff while it fails with a retryable error
func (c *Client) withRetry(ctx context.Context, endpoint string, fn func() error) error {
	var lastErr error
	backoff := c.retry.initial

	for attempt := 0; attempt < c.retry.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		// Non-retryable error (e.g., auth failure)
		if !isRetryableError(err) {
			return err
		}

		if attempt == c.retry.attempts-1 {
			break
		}

		c.logger.WithError(err).WithFields(map[string]interface{}{
			"attempt":  attempt + 1,
			"max":      c.retry.attempts - 1,
			"endpoint": endpoint,
			"backoff":  backoff,
		}).Debug("Retrying DART API call")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff *= 2
		if backoff > c.retry.max {
			backoff = c.retry.max
		}
	}

	return fmt.Errorf("max retries exceeded for %s: %w", endpoint, lastErr)
}
