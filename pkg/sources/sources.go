// Package sources classifies provenance URLs into trust tiers. A value is
// only as credible as where it was seen: an operator's own site outranks a
// news article, which outranks an anonymous page. The geocoding service is
// not a URL at all and is handled as a fixed sentinel.
package sources

import (
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// Type categorizes the site a value was observed on.
type Type string

// Source types.
const (
	OperatorWebsite Type = "operator_website"
	PropertyPortal  Type = "property_portal"
	News            Type = "news"
	Planning        Type = "planning"
	Other           Type = "other"
)

// String returns the string representation of a source type.
func (t Type) String() string {
	return string(t)
}

// Geocoder is the sentinel source identifier for values derived from the
// postcodes.io lookup service. It is always treated as HIGH confidence.
const Geocoder = "postcodes.io"

// Domain membership lists for classification. Matching is by substring so
// that subdomains and paths hit without extra parsing.
var (
	propertyPortals = []string{
		"rightmove.co.uk", "zoopla.co.uk", "onthemarket.com",
		"openrent.com", "spareroom.co.uk",
	}

	newsSites = []string{
		"btrnews.co.uk", "urbanliving.news", "reactnews.com",
		"egi.co.uk", "estatesgazette.com", "propertyweek.com",
		"placenorth.co.uk", "insidehousing.co.uk", "costar.com",
		"buildtorent.org.uk",
	}

	planningSites = []string{
		"planningpipe.com", "planning.", "planningportal.",
	}
)

// Classify categorizes a URL into a source type. When operatorDomain is
// non-empty it is checked first: any URL containing it is the operator's own
// website regardless of the membership lists.
func Classify(url, operatorDomain string) Type {
	lower := strings.ToLower(url)
	if operatorDomain != "" && strings.Contains(lower, operatorDomain) {
		return OperatorWebsite
	}
	for _, p := range propertyPortals {
		if strings.Contains(lower, p) {
			return PropertyPortal
		}
	}
	for _, n := range newsSites {
		if strings.Contains(lower, n) {
			return News
		}
	}
	for _, p := range planningSites {
		if strings.Contains(lower, p) {
			return Planning
		}
	}
	return Other
}

// Confidence scores how much to trust a value found at sourceURL. The
// geocoder sentinel and the operator's own website are authoritative;
// otherwise trust rests on corroboration, measured as the number of crawl
// attempts that succeeded for the listing.
func Confidence(sourceURL, operatorDomain string, successfulCrawls int) developments.Confidence {
	if sourceURL == "" {
		return developments.ConfidenceLow
	}
	if sourceURL == Geocoder {
		return developments.ConfidenceHigh
	}
	if Classify(sourceURL, operatorDomain) == OperatorWebsite {
		return developments.ConfidenceHigh
	}
	if successfulCrawls >= 2 {
		return developments.ConfidenceMedium
	}
	return developments.ConfidenceLow
}

// Label renders a human-readable name for a source identifier, for report
// notes.
func Label(sourceURL string) string {
	if sourceURL == Geocoder {
		return "postcodes.io API"
	}
	if sourceURL == "" {
		return "web sources"
	}
	if d := developments.Domain(sourceURL); d != "" {
		return d
	}
	return sourceURL
}
