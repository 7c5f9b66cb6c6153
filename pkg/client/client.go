// Package client provides the core Token Metrics HTTP client: URL and
// header construction, request execution, error surfacing, and an
// optional Redis-backed response cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cryptodata-labs/tokenmetrics-go/pkg/cache"
)

// DefaultBaseURL is the production Token Metrics API endpoint.
const DefaultBaseURL = "https://api.tokenmetrics.com/v2"

// Prometheus metrics for client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tm_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tm_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tm_errors_total",
		Help: "Total upstream errors by class",
	}, []string{"class"})
)

// Client issues single HTTP requests against the Token Metrics API.
type Client struct {
	httpClient *http.Client
	config     Config
	cache      *cache.Store
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// APIKey is sent in the x-api-key header (REQUIRED).
	APIKey string

	// BaseURL overrides the production API endpoint.
	BaseURL string

	// IntegrationID is sent in the x-integration-id header.
	IntegrationID string

	// Cache enables Redis response caching for GET requests when set.
	Cache *cache.Store

	// HTTPClient overrides the default HTTP client (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a configuration pointed at the production API.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:        apiKey,
		BaseURL:       DefaultBaseURL,
		IntegrationID: "tokenmetrics-go",
	}
}

// New creates a new Token Metrics client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.IntegrationID == "" {
		cfg.IntegrationID = "tokenmetrics-go"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		cache:      cfg.Cache,
		logger:     log.With().Str("component", "tm-client").Logger(),
	}, nil
}

// Send performs a single request and returns the decoded JSON body.
//
// GET requests serialize params as the query string; POST requests
// serialize body as a JSON payload. Any transport error or HTTP status
// >= 400 is returned as an *APIError carrying status, headers, and body
// text. Send never retries.
func (c *Client) Send(ctx context.Context, method, path string, params Params, body any) (any, error) {
	switch method {
	case http.MethodGet, http.MethodPost:
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	endpoint := strings.Trim(path, "/")
	url := strings.TrimRight(c.config.BaseURL, "/") + "/" + endpoint

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	var cacheKey cache.Key
	query := params.Values()

	if method == http.MethodGet && c.cache != nil {
		cacheKey = cache.Key{Endpoint: endpoint, Query: query}
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			c.logger.Debug().Str("endpoint", endpoint).Msg("Serving response from cache")
			return decodeBody(cached)
		} else if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	var payload io.Reader
	if method == http.MethodPost && body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("x-integration-id", c.config.IntegrationID)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Msg("Executing upstream request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &APIError{Err: err}
		errorsTotal.WithLabelValues(string(apiErr.Class())).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{Err: fmt.Errorf("read response body: %w", err)}
		errorsTotal.WithLabelValues(string(apiErr.Class())).Inc()
		return nil, apiErr
	}

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       string(respBody),
		}
		errorsTotal.WithLabelValues(string(apiErr.Class())).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Str("error_class", string(apiErr.Class())).
			Msg("Upstream request error")
		return nil, apiErr
	}

	if method == http.MethodGet && c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, respBody); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache response")
		}
	}

	return decodeBody(respBody)
}

// Get performs a GET request against an endpoint path.
func (c *Client) Get(ctx context.Context, path string, params Params) (any, error) {
	return c.Send(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with a JSON payload.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.Send(ctx, http.MethodPost, path, nil, body)
}

// decodeBody parses a JSON response body. An empty body decodes to nil.
func decodeBody(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}
