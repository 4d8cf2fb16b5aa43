package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
	"github.com/kailas-cloud/fuzzdex/internal/metrics"
)

const (
	// DefaultBaseURL is the public Google Books volumes endpoint.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	providerName   = "googlebooks"
	defaultTimeout = 5 * time.Second

	// Google Books rejects maxResults above 40.
	maxResultsCap = 40

	unknownTitle  = "Unknown Item"
	unknownAuthor = "Unknown Author"
)

// Client is a catalog provider backed by the Google Books volumes API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the Google Books provider settings. APIKey is optional:
// the volumes endpoint serves unauthenticated requests at a lower quota.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a Google Books provider.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// volumesResponse mirrors the Google Books volumes list shape. A zero-hit
// response legitimately omits items, so items stays a plain slice and only
// totalItems is required.
type volumesResponse struct {
	TotalItems *int     `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title   string   `json:"title"`
		Authors []string `json:"authors"`
	} `json:"volumeInfo"`
}

// Search implements search.Provider. One outbound GET, no retry.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]result.Hit, error) {
	maxResults := limit
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + "/volumes?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "unavailable").Inc()
		return nil, fmt.Errorf("google books request failed: %w: %w", domain.ErrDownstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "unavailable").Inc()
		return nil, fmt.Errorf("google books returned %d: %w", resp.StatusCode, domain.ErrDownstreamUnavailable)
	}

	var parsed volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "contract").Inc()
		return nil, fmt.Errorf("decode google books response: %w: %w", domain.ErrDownstreamContractViolation, err)
	}
	if parsed.TotalItems == nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "contract").Inc()
		return nil, fmt.Errorf("google books response missing totalItems: %w", domain.ErrDownstreamContractViolation)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())

	items := parsed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	hits := make([]result.Hit, len(items))
	for i, v := range items {
		hits[i] = volumeToHit(v)
	}
	return hits, nil
}

// HealthCheck verifies API availability with a minimal one-result query.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.Search(ctx, "the", 1); err != nil {
		return fmt.Errorf("google books health check: %w", err)
	}
	return nil
}

func volumeToHit(v volume) result.Hit {
	title := v.VolumeInfo.Title
	if title == "" {
		title = unknownTitle
	}
	author := strings.Join(v.VolumeInfo.Authors, ", ")
	if author == "" {
		author = unknownAuthor
	}
	return result.NewHit(title, author, v.ID)
}
