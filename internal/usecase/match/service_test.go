package match

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/fuzzdex/internal/domain/search/candidate"
	"github.com/kailas-cloud/fuzzdex/internal/domain/search/request"
)

func makeCandidates(titles ...string) []candidate.Candidate {
	out := make([]candidate.Candidate, len(titles))
	for i, title := range titles {
		out[i] = candidate.Reconstruct(map[string]string{"title": title})
	}
	return out
}

func makeLocalRequest(t *testing.T, query string, threshold, limit int) *request.Local {
	t.Helper()
	req, err := request.NewLocal(query, threshold, limit, "")
	if err != nil {
		t.Fatalf("request.NewLocal: %v", err)
	}
	return &req
}

func TestMatch_TypoTolerant(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "Harry Poter", 80, 5)
	candidates := makeCandidates("Harry Potter", "Harry Plotter", "Unrelated Title")

	matches := svc.Match(req, candidates)

	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}
	top := matches[0].Candidate()
	if top.Text("title") != "Harry Potter" {
		t.Errorf("top match = %q, want %q", top.Text("title"), "Harry Potter")
	}
	for _, m := range matches {
		c := m.Candidate()
		if c.Text("title") == "Unrelated Title" {
			t.Error("Unrelated Title should score below threshold 80")
		}
		if m.Score() < req.Threshold() {
			t.Errorf("match %q scored %d, below threshold %d", c.Text("title"), m.Score(), req.Threshold())
		}
	}
}

func TestMatch_ScoresDescendingWithRanks(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "harry potter", 0, 10)
	candidates := makeCandidates("Completely Different", "Harry Potter", "Harry Plotter")

	matches := svc.Match(req, candidates)

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches at threshold 0, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score() > matches[i-1].Score() {
			t.Errorf("scores not descending at %d: %d > %d", i, matches[i].Score(), matches[i-1].Score())
		}
	}
	for i, m := range matches {
		if m.Rank() != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, m.Rank(), i+1)
		}
	}
}

func TestMatch_StableOnTies(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "harry potter", 0, 10)
	// Identical texts score identically; input order must survive the sort.
	candidates := []candidate.Candidate{
		candidate.Reconstruct(map[string]string{"title": "Harry Potter", "pos": "first"}),
		candidate.Reconstruct(map[string]string{"title": "Harry Potter", "pos": "second"}),
		candidate.Reconstruct(map[string]string{"title": "Harry Potter", "pos": "third"}),
	}

	matches := svc.Match(req, candidates)

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	want := []string{"first", "second", "third"}
	got := make([]string, len(matches))
	for i, m := range matches {
		c := m.Candidate()
		got[i] = c.Text("pos")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie order = %v, want %v", got, want)
	}
}

func TestMatch_LimitTruncates(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "harry potter", 0, 1)
	candidates := makeCandidates("Harry Plotter", "Harry Potter", "Harry Pottery")

	matches := svc.Match(req, candidates)

	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match with limit=1, got %d", len(matches))
	}
	top := matches[0].Candidate()
	if top.Text("title") != "Harry Potter" {
		t.Errorf("top match = %q, want the exact title", top.Text("title"))
	}
}

func TestMatch_EmptyCandidates(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "anything", 80, 5)

	if matches := svc.Match(req, nil); len(matches) != 0 {
		t.Errorf("expected no matches for empty candidate list, got %d", len(matches))
	}
}

func TestMatch_AllBelowThreshold(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "quantum physics", 90, 5)
	candidates := makeCandidates("Cooking for Two", "Garden Design")

	if matches := svc.Match(req, candidates); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestMatch_MissingFieldNeverMatches(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "harry potter", 1, 5)
	candidates := []candidate.Candidate{
		candidate.Reconstruct(map[string]string{"name": "Harry Potter"}), // no title field
	}

	if matches := svc.Match(req, candidates); len(matches) != 0 {
		t.Errorf("candidate without match field should not match, got %d", len(matches))
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "HARRY POTTER", 100, 5)
	candidates := makeCandidates("harry potter")

	matches := svc.Match(req, candidates)
	if len(matches) != 1 {
		t.Fatalf("expected case-folded exact match, got %d matches", len(matches))
	}
	if matches[0].Score() != 100 {
		t.Errorf("score = %d, want 100", matches[0].Score())
	}
}

func TestMatch_Deterministic(t *testing.T) {
	svc := New()
	req := makeLocalRequest(t, "Harry Poter", 50, 5)
	candidates := makeCandidates("Harry Potter", "Harry Plotter", "Potter")

	first := svc.Match(req, candidates)
	second := svc.Match(req, candidates)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}
}

func TestScore_ExactAndSubstring(t *testing.T) {
	if got := Score("harry potter", "harry potter"); got != 100 {
		t.Errorf("exact match score = %d, want 100", got)
	}
	// Partial ratio: the query fully contained in the text scores 100.
	if got := Score("potter", "harry potter"); got != 100 {
		t.Errorf("substring score = %d, want 100", got)
	}
	if got := Score("harry potter", ""); got != 0 {
		t.Errorf("empty text score = %d, want 0", got)
	}
}
