package crawler

import (
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// BuildCrawlURLs returns the prioritized URLs to crawl for a listing:
// the development's own website first, then the operator's site. When
// the listing has a slug, the operator URL targets the slug path on
// the assumption that operators publish per-development pages there.
// The operator site is skipped when it shares a domain with the
// listing's own website.
func BuildCrawlURLs(listing *developments.Listing) []string {
	var urls []string

	websiteURL := ensureScheme(listing.WebsiteURL)
	if websiteURL != "" {
		urls = append(urls, websiteURL)
	}

	if listing.Operator == nil || listing.Operator.Website == "" {
		return urls
	}

	operatorURL := ensureScheme(listing.Operator.Website)
	if developments.Domain(operatorURL) == developments.Domain(websiteURL) && websiteURL != "" {
		return urls
	}

	if listing.Slug != "" {
		urls = append(urls, strings.TrimRight(operatorURL, "/")+"/"+listing.Slug)
	} else {
		urls = append(urls, operatorURL)
	}
	return urls
}

func ensureScheme(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if !strings.HasPrefix(rawURL, "http") {
		return "https://" + rawURL
	}
	return rawURL
}
