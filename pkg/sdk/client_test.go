package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchExternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search_external" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("source") != "openlibrary" || q.Get("query") != "dune" || q.Get("limit") != "3" {
			t.Errorf("unexpected params: %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"title": "Dune", "author": "Frank Herbert", "id": "/works/OL1W", "source": "openlibrary"}
		]`))
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	hits, err := client.SearchExternal(context.Background(), "openlibrary", "dune", WithLimit(3))
	if err != nil {
		t.Fatalf("SearchExternal failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Title != "Dune" || hits[0].Author != "Frank Herbert" {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
}

func TestSearchExternal_UnsupportedSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "unsupported_source",
			"message": "unsupported source",
		})
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.SearchExternal(context.Background(), "unknown", "dune")
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected *APIError")
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
}

func TestSearchLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		q := r.URL.Query()
		if q.Get("query") != "Harry Poter" || q.Get("fuzz_threshold") != "80" {
			t.Errorf("unexpected params: %v", q)
		}

		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Candidates []map[string]string `json:"candidates"`
			MatchField string              `json:"match_field"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload.Candidates) != 2 {
			t.Errorf("expected 2 candidates, got %d", len(payload.Candidates))
		}
		if payload.MatchField != "name" {
			t.Errorf("match_field = %q, want name", payload.MatchField)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"record": {"name": "Harry Potter"}, "score": 96, "rank": 1}
		]`))
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	matches, err := client.SearchLocal(context.Background(), "Harry Poter",
		[]map[string]string{
			{"name": "Harry Potter"},
			{"name": "Unrelated"},
		},
		WithThreshold(80), WithMatchField("name"),
	)
	if err != nil {
		t.Fatalf("SearchLocal failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Record["name"] != "Harry Potter" || matches[0].Rank != 1 {
		t.Errorf("unexpected match: %+v", matches[0])
	}
}

func TestSearchLocal_InvalidArgument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "invalid_argument",
			"message": "fuzz_threshold must be between 0 and 100",
		})
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.SearchLocal(context.Background(), "q", nil, WithThreshold(101))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := New(server.URL, WithAPIKey("secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.SearchExternal(context.Background(), "openlibrary", "q"); err != nil {
		t.Fatalf("SearchExternal failed: %v", err)
	}
}

func TestHealth_Degraded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status": "degraded", "checks": {"openlibrary": "error"}}`))
	}))
	defer server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("degraded health must not be an error: %v", err)
	}
	if report.Status != "degraded" {
		t.Errorf("status = %q, want degraded", report.Status)
	}
	if report.Checks["openlibrary"] != "error" {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
