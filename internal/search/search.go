// Package search finds candidate pages for development discovery using
// the SerpAPI Google search API, scoped to UK results.
package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

// DefaultEndpoint is the SerpAPI search endpoint.
const DefaultEndpoint = "https://serpapi.com/search.json"

// resultsPerQuery is how many organic results each query requests.
const resultsPerQuery = 20

// excludedDomains are never worth crawling: social platforms, the
// register of companies, and encyclopedias produce no development data.
var excludedDomains = []string{
	"youtube.com", "linkedin.com", "twitter.com", "x.com",
	"facebook.com", "instagram.com", "tiktok.com",
	"pinterest.com", "reddit.com", "companieshouse.gov.uk",
	"gov.uk", "wikipedia.org",
}

// baseQueries run in every discovery mode.
var baseQueries = []string{
	"build to rent development UK 2025",
	"build to rent development UK 2026",
	"new BTR scheme UK announced",
}

// extendedQueries run only in full discovery mode.
var extendedQueries = []string{
	"build to rent planning approval UK",
	"BTR development under construction UK",
	"build to rent apartments opening UK 2025",
	"build to rent apartments opening UK 2026",
	"new build to rent homes UK",
	"BTR scheme planning permission 2025",
	"BTR scheme planning permission 2026",
	"site:btrnews.co.uk new BTR development",
	"site:reactnews.com build to rent",
	"site:propertyweek.com build to rent development",
}

// Result is one unique search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Query   string `json:"query"`
}

// Queries builds the discovery query list. A custom query replaces the
// built-in set entirely; otherwise test mode runs only the base
// queries and full mode adds the extended set. Extra queries from
// configuration are appended in both built-in modes.
func Queries(testMode bool, customQuery string, extra []string) []string {
	if customQuery != "" {
		return []string{customQuery}
	}

	queries := append([]string{}, baseQueries...)
	if !testMode {
		queries = append(queries, extendedQueries...)
	}
	return append(queries, extra...)
}

// Client runs searches against SerpAPI.
type Client struct {
	apiKey   string
	endpoint string
	delay    time.Duration
	httpc    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the SerpAPI endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithDelay sets the pause between successive queries.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.delay = delay
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a SerpAPI client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}
	c := &Client{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		delay:    2 * time.Second,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs each query in order and returns unique results across
// all of them, capped at limit. A failing query is logged and skipped;
// only context cancellation aborts the run.
func (c *Client) Search(ctx context.Context, queries []string, limit int) ([]Result, error) {
	var results []Result
	seen := make(map[string]bool)

	for i, query := range queries {
		if i > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}

		logging.Info().
			Int("query", i+1).
			Int("total", len(queries)).
			Str("q", query).
			Msg("Searching")

		resp, err := c.runQuery(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logging.Err(err).Str("q", query).Msg("Search query failed")
			continue
		}

		added := 0
		for _, item := range resp.OrganicResults {
			if item.Link == "" || excluded(item.Link) {
				continue
			}
			key := normalizeURL(item.Link)
			if seen[key] {
				continue
			}
			seen[key] = true

			results = append(results, Result{
				Title:   item.Title,
				URL:     item.Link,
				Snippet: item.Snippet,
				Query:   query,
			})
			added++
		}

		logging.Debug().
			Int("organic", len(resp.OrganicResults)).
			Int("added", added).
			Msg("Query results collected")
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (c *Client) runQuery(ctx context.Context, query string) (*serpResponse, error) {
	params := url.Values{
		"engine":        {"google"},
		"q":             {query},
		"location":      {"United Kingdom"},
		"google_domain": {"google.co.uk"},
		"gl":            {"uk"},
		"hl":            {"en"},
		"num":           {"20"},
		"api_key":       {c.apiKey},
	}

	endpoint := c.endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewAPIError("serpapi", 0, c.endpoint, "build request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.NewAPIError("serpapi", 0, c.endpoint, "request failed", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError("serpapi", resp.StatusCode, c.endpoint, "unexpected status", nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, errors.NewAPIError("serpapi", resp.StatusCode, c.endpoint, "read body", err)
	}

	var sr serpResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, errors.NewParseError("json", c.endpoint, "decode search response", err)
	}
	return &sr, nil
}

func excluded(rawURL string) bool {
	domain := developments.Domain(rawURL)
	for _, excl := range excludedDomains {
		if strings.Contains(domain, excl) {
			return true
		}
	}
	return false
}

// normalizeURL builds the dedup key: lowercased host plus path with
// any trailing slash, query, and fragment stripped.
func normalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(parsed.Host) + strings.TrimRight(parsed.Path, "/")
}
