// Package crawler fetches web pages and converts them to markdown
// evidence for extraction and verification. Responses are cached in a
// local SQLite database so repeated runs stay polite.
package crawler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

const userAgent = "Mozilla/5.0 (compatible; surveyor/1.0; +https://btrdirectory.co.uk)"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Crawler fetches pages with a politeness delay and optional caching.
type Crawler struct {
	httpc     *http.Client
	cache     *Cache
	delay     time.Duration
	converter *converter.Converter
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Crawler) {
		c.httpc = httpc
	}
}

// WithCache attaches a response cache.
func WithCache(cache *Cache) Option {
	return func(c *Crawler) {
		c.cache = cache
	}
}

// WithDelay sets the pause between successive fetches.
func WithDelay(delay time.Duration) Option {
	return func(c *Crawler) {
		c.delay = delay
	}
}

// New creates a Crawler.
func New(opts ...Option) *Crawler {
	c := &Crawler{
		httpc: &http.Client{Timeout: 30 * time.Second},
		delay: 2500 * time.Millisecond,
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves one page and converts it to markdown. Fetch never
// returns an error: failures are recorded on the Page so a listing's
// remaining sources still get crawled.
func (c *Crawler) Fetch(ctx context.Context, rawURL string) verify.Page {
	if c.cache != nil {
		if page, ok := c.cache.Get(ctx, rawURL); ok {
			logging.Debug().Str("url", rawURL).Msg("Cache hit")
			return page
		}
	}

	page := c.fetch(ctx, rawURL)

	if c.cache != nil && page.Success {
		c.cache.Put(ctx, page)
	}
	return page
}

// FetchAll retrieves pages in order with the politeness delay between
// requests.
func (c *Crawler) FetchAll(ctx context.Context, urls []string) []verify.Page {
	pages := make([]verify.Page, 0, len(urls))
	for i, rawURL := range urls {
		if i > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return pages
			}
		}
		pages = append(pages, c.Fetch(ctx, rawURL))
	}
	return pages
}

func (c *Crawler) fetch(ctx context.Context, rawURL string) verify.Page {
	page := verify.Page{URL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		page.Error = err.Error()
		page.DeadLink = DetectDeadLink(0, page.Error)
		return page
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		page.Error = err.Error()
		page.DeadLink = DetectDeadLink(0, page.Error)
		return page
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	page.StatusCode = resp.StatusCode
	page.DeadLink = DetectDeadLink(resp.StatusCode, "")
	if resp.StatusCode != http.StatusOK {
		page.Error = resp.Status
		return page
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		page.Error = err.Error()
		return page
	}

	html := string(body)
	page.Title = pageTitle(html)

	markdown, err := c.converter.ConvertString(html)
	if err != nil {
		// Fall back to raw text rather than losing the page.
		markdown = html
	}
	page.Content = markdown
	page.Success = strings.TrimSpace(markdown) != ""

	logging.Debug().
		Str("url", rawURL).
		Int("status", page.StatusCode).
		Int("content_len", len(page.Content)).
		Msg("Page fetched")

	return page
}

// deadStatusCodes are treated as dead links. 403 is included because
// operator sites decommission development pages behind blanket denials.
var deadStatusCodes = map[int]bool{
	404: true, 410: true, 403: true,
	500: true, 502: true, 503: true,
}

// deadErrorIndicators mark transport failures that suggest the host is
// gone rather than briefly unreachable.
var deadErrorIndicators = []string{
	"dns", "nxdomain", "err_name", "timeout",
	"connection refused", "ssl", "certificate",
	"name or service not known", "no such host",
}

// DetectDeadLink reports whether a status code or transport error
// indicates a dead link.
func DetectDeadLink(statusCode int, errText string) bool {
	if deadStatusCodes[statusCode] {
		return true
	}
	if errText == "" {
		return false
	}
	lower := strings.ToLower(errText)
	for _, indicator := range deadErrorIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
