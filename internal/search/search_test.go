package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btrdirectory/surveyor/pkg/errors"
)

func TestQueries(t *testing.T) {
	test := Queries(true, "", nil)
	if len(test) != len(baseQueries) {
		t.Errorf("test mode: %d queries, want %d", len(test), len(baseQueries))
	}

	full := Queries(false, "", nil)
	if len(full) != len(baseQueries)+len(extendedQueries) {
		t.Errorf("full mode: %d queries, want %d", len(full), len(baseQueries)+len(extendedQueries))
	}

	custom := Queries(false, "BTR Leeds city centre", nil)
	if len(custom) != 1 || custom[0] != "BTR Leeds city centre" {
		t.Errorf("custom query should replace the built-in set: %v", custom)
	}

	extra := Queries(true, "", []string{"site:example.com BTR"})
	if len(extra) != len(baseQueries)+1 || extra[len(extra)-1] != "site:example.com BTR" {
		t.Errorf("extra queries should append: %v", extra)
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://uk.linkedin.com/company/greystar", true},
		{"https://find-and-update.company-information.service.gov.uk/company/123", true},
		{"https://en.wikipedia.org/wiki/Build_to_rent", true},
		{"https://btrnews.co.uk/article", false},
		{"https://www.greystar.co.uk", false},
	}

	for _, tt := range tests {
		if got := excluded(tt.url); got != tt.want {
			t.Errorf("excluded(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	a := normalizeURL("https://Example.com/Path/")
	b := normalizeURL("http://example.com/Path?utm_source=x#top")
	if a != b {
		t.Errorf("variants should share a dedup key: %q vs %q", a, b)
	}
	if a != "example.com/path" {
		t.Errorf("key = %q, want example.com/path", a)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(""); !errors.Is(err, errors.ErrAPIKeyRequired) {
		t.Errorf("New(\"\") err = %v, want ErrAPIKeyRequired", err)
	}
}

func TestSearchDedupAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("gl") != "uk" {
			t.Errorf("gl = %q, want uk", r.URL.Query().Get("gl"))
		}
		resp := map[string]any{
			"organic_results": []map[string]string{
				{"title": "A", "link": "https://btrnews.co.uk/story-1", "snippet": "one"},
				{"title": "A again", "link": "https://btrnews.co.uk/story-1/", "snippet": "dup"},
				{"title": "Social", "link": "https://www.youtube.com/watch?v=x"},
				{"title": "B", "link": "https://propertyweek.com/story-2"},
				{"title": "C", "link": "https://placenorth.co.uk/story-3"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := New("test-key", WithEndpoint(server.URL), WithDelay(0))
	if err != nil {
		t.Fatal(err)
	}

	results, err := client.Search(context.Background(), []string{"q1"}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want limit 2", len(results))
	}
	if results[0].URL != "https://btrnews.co.uk/story-1" || results[1].URL != "https://propertyweek.com/story-2" {
		t.Errorf("results = %+v", results)
	}
	if results[0].Query != "q1" {
		t.Errorf("query attribution = %q", results[0].Query)
	}
}

func TestSearchSkipsFailingQuery(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic_results": []map[string]string{
				{"title": "B", "link": "https://propertyweek.com/story-2"},
			},
		})
	}))
	defer server.Close()

	client, err := New("test-key", WithEndpoint(server.URL), WithDelay(0))
	if err != nil {
		t.Fatal(err)
	}

	results, err := client.Search(context.Background(), []string{"failing", "working"}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 from the surviving query", len(results))
	}
}

func TestSearchContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"organic_results": []map[string]string{}})
	}))
	defer server.Close()

	client, err := New("test-key", WithEndpoint(server.URL), WithDelay(0))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Search(ctx, []string{"a", "b"}, 0); err == nil {
		t.Error("cancelled context should abort the run")
	}
}
