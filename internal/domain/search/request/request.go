package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 1024
	DefaultLimit   = 5
	MaxLimit       = 100
	// DefaultThreshold is the minimum similarity score applied when the
	// caller omits fuzz_threshold.
	DefaultThreshold = 80
	// DefaultMatchField is the candidate field compared against the query
	// when the caller does not designate one.
	DefaultMatchField = "title"
)

// External is a validated external-catalog search request.
type External struct {
	source string
	query  string
	limit  int
}

// NewExternal validates and normalizes external search parameters.
// An empty query is rejected. A non-positive limit falls back to the
// default and is clamped to MaxLimit.
func NewExternal(source, query string, limit int) (External, error) {
	if source == "" {
		return External{}, fmt.Errorf("%w: source is required", domain.ErrInvalidArgument)
	}
	query, err := normalizeQuery(query)
	if err != nil {
		return External{}, err
	}
	return External{
		source: source,
		query:  query,
		limit:  normalizeLimit(limit),
	}, nil
}

// Source returns the external provider selector.
func (r *External) Source() string { return r.source }

// Query returns the search term.
func (r *External) Query() string { return r.query }

// Limit returns the maximum number of results.
func (r *External) Limit() int { return r.limit }

// Local is a validated local fuzzy-match request.
type Local struct {
	query      string
	threshold  int
	limit      int
	matchField string
}

// NewLocal validates and normalizes local search parameters.
// threshold must be within [0, 100]; pass DefaultThreshold when the caller
// omitted it. An empty matchField falls back to DefaultMatchField.
func NewLocal(query string, threshold, limit int, matchField string) (Local, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return Local{}, err
	}
	if threshold < 0 || threshold > 100 {
		return Local{}, fmt.Errorf(
			"%w: fuzz_threshold must be between 0 and 100, got %d",
			domain.ErrInvalidArgument, threshold,
		)
	}
	if matchField == "" {
		matchField = DefaultMatchField
	}
	return Local{
		query:      q,
		threshold:  threshold,
		limit:      normalizeLimit(limit),
		matchField: matchField,
	}, nil
}

// Query returns the search term.
func (r *Local) Query() string { return r.query }

// Threshold returns the minimum similarity score for a candidate to match.
func (r *Local) Threshold() int { return r.threshold }

// Limit returns the maximum number of results.
func (r *Local) Limit() int { return r.limit }

// MatchField returns the candidate field compared against the query.
func (r *Local) MatchField() string { return r.matchField }

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}
	if len(query) > MaxQueryLength {
		return "", fmt.Errorf(
			"%w: query too long (max %d chars)", domain.ErrInvalidArgument, MaxQueryLength,
		)
	}
	return query, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
