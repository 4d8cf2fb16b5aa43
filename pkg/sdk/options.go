package sdk

import "net/http"

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithHTTPClient sets the underlying HTTP client.
// Defaults to an http.Client with a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpClient = hc
	})
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// SearchOption configures a single search call.
type SearchOption interface {
	apply(*searchParams)
}

// searchOptionFunc adapts a function to the SearchOption interface.
type searchOptionFunc func(*searchParams)

func (f searchOptionFunc) apply(p *searchParams) { f(p) }

type searchParams struct {
	limit      int
	threshold  int
	hasLimit   bool
	hasThresh  bool
	matchField string
	source     string
}

// WithLimit caps the number of returned results. The server default is 5.
func WithLimit(limit int) SearchOption {
	return searchOptionFunc(func(p *searchParams) {
		p.limit = limit
		p.hasLimit = true
	})
}

// WithThreshold sets the minimum 0-100 similarity score for local search.
// The server default is 80.
func WithThreshold(threshold int) SearchOption {
	return searchOptionFunc(func(p *searchParams) {
		p.threshold = threshold
		p.hasThresh = true
	})
}

// WithMatchField designates the candidate field compared against the query.
// The server default is "title".
func WithMatchField(field string) SearchOption {
	return searchOptionFunc(func(p *searchParams) {
		p.matchField = field
	})
}

// WithSourceLabel tags a local search with a data-set label for server-side
// logging. It does not change matching behavior.
func WithSourceLabel(source string) SearchOption {
	return searchOptionFunc(func(p *searchParams) {
		p.source = source
	})
}
