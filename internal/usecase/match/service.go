package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/kailas-cloud/fuzzdex/internal/domain/search/candidate"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/request"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/result"
)

// Service ranks caller-supplied candidates against a query by fuzzy
// text similarity. It performs no I/O and holds no state, so identical
// inputs always produce identical ordered results.
type Service struct{}

// New creates a matcher service.
func New() *Service {
	return &Service{}
}

// Match scores each candidate's match field against the query with a 0-100
// partial ratio, keeps candidates scoring at or above the request threshold,
// sorts them by descending score (ties preserve input order), and truncates
// to the request limit. An empty candidate list yields an empty result.
func (s *Service) Match(req *request.Local, candidates []candidate.Candidate) []result.Match {
	if len(candidates) == 0 {
		return nil
	}

	query := fold(req.Query())

	type scored struct {
		cand  candidate.Candidate
		score int
	}
	qualifying := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		score := Score(query, fold(c.Text(req.MatchField())))
		if score >= req.Threshold() {
			qualifying = append(qualifying, scored{cand: c, score: score})
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].score > qualifying[j].score
	})

	if len(qualifying) > req.Limit() {
		qualifying = qualifying[:req.Limit()]
	}

	matches := make([]result.Match, len(qualifying))
	for i, q := range qualifying {
		matches[i] = result.NewMatch(q.cand, q.score, i+1)
	}
	return matches
}

// Score computes the 0-100 partial-ratio similarity between two strings.
// 100 means one string contains the other; typos reduce the score
// proportionally. An empty candidate text never matches a non-empty query.
func Score(query, text string) int {
	if text == "" {
		return 0
	}
	return fuzzy.PartialRatio(query, text)
}

// fold normalizes text for comparison: case and surrounding whitespace do
// not affect the score.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
