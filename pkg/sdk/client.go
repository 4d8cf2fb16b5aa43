package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client is the fuzzdex API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a fuzzdex client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("sdk: base URL required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("sdk: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c, nil
}

// SearchExternal queries an external catalog source through the service.
// Results arrive in provider order, truncated to the limit.
func (c *Client) SearchExternal(
	ctx context.Context, source, query string, opts ...SearchOption,
) ([]ExternalHit, error) {
	p := applySearchOptions(opts)

	params := url.Values{}
	params.Set("source", source)
	params.Set("query", query)
	if p.hasLimit {
		params.Set("limit", strconv.Itoa(p.limit))
	}

	var hits []ExternalHit
	if err := c.get(ctx, "/search_external", params, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

// searchLocalPayload mirrors the /search_local request body.
type searchLocalPayload struct {
	Candidates []map[string]string `json:"candidates"`
	MatchField string              `json:"match_field,omitempty"`
}

// SearchLocal fuzzy-matches the supplied candidate records against the
// query. Results are ordered by descending similarity score.
func (c *Client) SearchLocal(
	ctx context.Context, query string, candidates []map[string]string, opts ...SearchOption,
) ([]LocalMatch, error) {
	p := applySearchOptions(opts)

	params := url.Values{}
	params.Set("query", query)
	if p.hasThresh {
		params.Set("fuzz_threshold", strconv.Itoa(p.threshold))
	}
	if p.hasLimit {
		params.Set("limit", strconv.Itoa(p.limit))
	}
	if p.source != "" {
		params.Set("source", p.source)
	}

	body, err := json.Marshal(searchLocalPayload{
		Candidates: candidates,
		MatchField: p.matchField,
	})
	if err != nil {
		return nil, fmt.Errorf("sdk: encode candidates: %w", err)
	}

	var matches []LocalMatch
	if err := c.do(ctx, http.MethodPost, "/search_local", params, body, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// Health fetches the service health report. A degraded service responds
// 503 but still returns a report, so that status is not an error here.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthReport{}, fmt.Errorf("sdk: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthReport{}, fmt.Errorf("sdk: GET /health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthReport{}, decodeAPIError(resp)
	}

	var report HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return HealthReport{}, fmt.Errorf("sdk: decode response: %w", err)
	}
	return report, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) do(
	ctx context.Context, method, path string, params url.Values, body []byte, out any,
) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("sdk: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sdk: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sdk: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Code = "internal_error"
		apiErr.Message = resp.Status
	}
	return apiErr
}

func applySearchOptions(opts []SearchOption) searchParams {
	var p searchParams
	for _, o := range opts {
		o.apply(&p)
	}
	return p
}
