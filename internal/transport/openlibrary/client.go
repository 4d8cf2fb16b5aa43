package openlibrary

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
	// DefaultBaseURL is the public Open Library search endpoint.
	DefaultBaseURL = "https://openlibrary.org"

	providerName   = "openlibrary"
	defaultTimeout = 5 * time.Second

	unknownTitle  = "Unknown Item"
	unknownAuthor = "Unknown Author"
)

// Client is a catalog provider backed by the Open Library search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the Open Library provider settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates an Open Library provider.
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
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// searchResponse mirrors the Open Library search.json shape. Docs is a
// pointer so a response missing the field entirely is distinguishable from
// an empty result set.
type searchResponse struct {
	NumFound int    `json:"numFound"`
	Docs     *[]doc `json:"docs"`
}

type doc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
}

// Search implements search.Provider. One outbound GET, no retry.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]result.Hit, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/search.json?" + params.Encode()

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
		return nil, fmt.Errorf("open library request failed: %w: %w", domain.ErrDownstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "unavailable").Inc()
		return nil, fmt.Errorf("open library returned %d: %w", resp.StatusCode, domain.ErrDownstreamUnavailable)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "contract").Inc()
		return nil, fmt.Errorf("decode open library response: %w: %w", domain.ErrDownstreamContractViolation, err)
	}
	if parsed.Docs == nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ProviderErrorsTotal.WithLabelValues(providerName, "contract").Inc()
		return nil, fmt.Errorf("open library response missing docs: %w", domain.ErrDownstreamContractViolation)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())

	docs := *parsed.Docs
	if len(docs) > limit {
		docs = docs[:limit]
	}

	hits := make([]result.Hit, len(docs))
	for i, d := range docs {
		hits[i] = docToHit(d)
	}
	return hits, nil
}

// HealthCheck verifies API availability with a minimal one-result query.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.Search(ctx, "the", 1); err != nil {
		return fmt.Errorf("open library health check: %w", err)
	}
	return nil
}

func docToHit(d doc) result.Hit {
	title := d.Title
	if title == "" {
		title = unknownTitle
	}
	author := strings.Join(d.AuthorName, ", ")
	if author == "" {
		author = unknownAuthor
	}
	return result.NewHit(title, author, d.Key)
}
