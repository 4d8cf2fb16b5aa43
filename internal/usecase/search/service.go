package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/request"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// Service routes external search requests to the selected catalog provider.
// Provider ordering is trusted as-is: results are truncated, never re-ranked.
type Service struct {
	providers map[string]Provider
	aliases   map[string]string
}

// New creates an external search service over a source→provider registry.
func New(providers map[string]Provider) *Service {
	return &Service{
		providers: providers,
		aliases:   map[string]string{},
	}
}

// WithAlias registers an alternate selector for an existing source
// (e.g. "books" → "openlibrary").
func (s *Service) WithAlias(alias, source string) *Service {
	s.aliases[alias] = source
	return s
}

// Search resolves the request source to a provider, issues the single
// outbound call, and truncates the hits to the request limit.
func (s *Service) Search(ctx context.Context, req *request.External) ([]result.Hit, error) {
	source := req.Source()
	if canonical, ok := s.aliases[source]; ok {
		source = canonical
	}

	provider, ok := s.providers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, req.Source())
	}

	hits, err := provider.Search(ctx, req.Query(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", source, err)
	}

	if len(hits) > req.Limit() {
		hits = hits[:req.Limit()]
	}
	return hits, nil
}

// Sources returns the known source selectors, aliases included.
func (s *Service) Sources() []string {
	out := make([]string, 0, len(s.providers)+len(s.aliases))
	for name := range s.providers {
		out = append(out, name)
	}
	for alias := range s.aliases {
		out = append(out, alias)
	}
	return out
}
