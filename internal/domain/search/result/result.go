package result

import "github.com/kailas-cloud/fuzzdex/internal/domain/search/candidate"

// Hit is a single external-catalog search result, in provider order.
type Hit struct {
	title  string
	author string
	id     string
}

// NewHit creates an external search hit.
func NewHit(title, author, id string) Hit {
	return Hit{title: title, author: author, id: id}
}

// Title returns the item title.
func (h *Hit) Title() string { return h.title }

// Author returns the item author(s), comma-joined.
func (h *Hit) Author() string { return h.author }

// ID returns the provider-native identifier, if any.
func (h *Hit) ID() string { return h.id }

// Match is a single local fuzzy-match result.
type Match struct {
	candidate candidate.Candidate
	score     int
	rank      int
}

// NewMatch creates a local match with a 0-100 similarity score and a
// 1-based rank.
func NewMatch(c candidate.Candidate, score, rank int) Match {
	return Match{candidate: c, score: score, rank: rank}
}

// Candidate returns the matched record.
func (m *Match) Candidate() candidate.Candidate { return m.candidate }

// Score returns the 0-100 similarity score.
func (m *Match) Score() int { return m.score }

// Rank returns the 1-based position in the ranked result list.
func (m *Match) Rank() int { return m.rank }
