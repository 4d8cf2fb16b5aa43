package search

import (
	"context"

	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// Provider is one external catalog backend. Implementations issue a single
// outbound request per call, map the provider response into hits, and wrap
// failures with the domain downstream sentinels.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]result.Hit, error)
}
