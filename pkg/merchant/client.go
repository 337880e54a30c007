// Package merchant provides the HTTP transport adapter for the merchant
// API: bearer-credential listing page fetches and per-SKU removal requests
// with error classification and rate-limit header tracking.
//
// The adapter satisfies both injected capabilities the core consumes:
// catalog.PageFetcher (page fetch failures surface as classified errors,
// terminal for the current walk) and removal.Deleter (all failures are
// converted to the (ok, code, detail) tuple and never raised).
package merchant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/merchix/catalog-sweeper/pkg/ratelimit"
	"github.com/merchix/catalog-sweeper/pkg/removal"
)

// Prometheus metrics for merchant API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_api_requests_total",
		Help: "Total merchant API requests by operation and status",
	}, []string{"operation", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sweeper_api_request_duration_seconds",
		Help:    "Merchant API request duration in seconds by operation",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_api_errors_total",
		Help: "Total merchant API errors by class",
	}, []string{"class"})
)

// removeBody is the fixed reason payload the removal endpoint expects.
const removeBody = `{"reason":"stopSelling"}`

// Config holds the client configuration.
type Config struct {
	// BaseURL is the merchant API root (e.g. "https://api-merchant.example.com/api/v3").
	BaseURL string

	// Token is the bearer credential attached to every request.
	Token string

	// UserAgent identifies this tool to the API.
	UserAgent string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Tracker gates requests on the shared rate-limit budget. Optional;
	// nil disables gating.
	Tracker *ratelimit.Tracker
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, token string) Config {
	return Config{
		BaseURL:   baseURL,
		Token:     token,
		UserAgent: "catalog-sweeper/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// Client is the merchant API transport adapter.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new merchant API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "merchant-client").Logger(),
	}, nil
}

// FetchPage fetches one listing page. Implements catalog.PageFetcher.
// Non-2xx responses and transport failures return a classified *APIError;
// the aggregator treats either as terminal for the current walk.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	start := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())
	}()

	if err := c.allowRequest(ctx); err != nil {
		apiRequestsTotal.WithLabelValues("list", "rate_limited").Inc()
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues("list", "network_error").Inc()
		return nil, &APIError{
			Class:   ErrorClassNetwork,
			Message: "page fetch failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	c.updateTracker(ctx, resp.Header)
	apiRequestsTotal.WithLabelValues("list", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		class := classifyStatus(resp.StatusCode)
		apiErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("url", pageURL).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Listing request error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      class,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			Class:   ErrorClassNetwork,
			Message: "read page body",
			Err:     err,
		}
	}

	return body, nil
}

// Remove deletes one product by SKU. Implements removal.Deleter.
//
// HTTP 200 is the only success code the removal endpoint recognizes. All
// other codes report (false, code, body); transport failures report
// (false, removal.CodeTransportFailure, error text). Never returns an error.
func (c *Client) Remove(ctx context.Context, identifier string) (bool, int, string) {
	start := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues("remove").Observe(time.Since(start).Seconds())
	}()

	if err := c.allowRequest(ctx); err != nil {
		apiRequestsTotal.WithLabelValues("remove", "rate_limited").Inc()
		return false, removal.CodeTransportFailure, err.Error()
	}

	removeURL := c.config.BaseURL + "/products/remove?sku=" + url.QueryEscape(identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, removeURL, bytes.NewReader([]byte(removeBody)))
	if err != nil {
		return false, removal.CodeTransportFailure, err.Error()
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues("remove", "network_error").Inc()
		return false, removal.CodeTransportFailure, err.Error()
	}
	defer resp.Body.Close()

	c.updateTracker(ctx, resp.Header)
	apiRequestsTotal.WithLabelValues("remove", strconv.Itoa(resp.StatusCode)).Inc()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		if class := classifyStatus(resp.StatusCode); class != "" {
			apiErrorsTotal.WithLabelValues(string(class)).Inc()
		}
		return false, resp.StatusCode, string(body)
	}

	return true, resp.StatusCode, string(body)
}

// allowRequest consults the optional rate-limit tracker before a request.
func (c *Client) allowRequest(ctx context.Context) error {
	if c.config.Tracker == nil {
		return nil
	}

	allowed, err := c.config.Tracker.ShouldAllowRequest(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Rate limit check failed - allowing request")
		return nil
	}
	if !allowed {
		c.logger.Warn().Msg("Request blocked by rate limit tracker")
		return ErrRateLimitBlocked
	}
	return nil
}

// updateTracker feeds rate-limit response headers into the tracker.
func (c *Client) updateTracker(ctx context.Context, headers http.Header) {
	if c.config.Tracker == nil {
		return
	}
	if err := c.config.Tracker.UpdateFromHeaders(ctx, headers); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update rate limit state from headers")
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
