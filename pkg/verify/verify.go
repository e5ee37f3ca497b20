// Package verify reconciles stored directory listings against freshly
// observed web evidence. Every stored field is compared to the best observed
// value with type-aware equality and classified into exactly one of five
// outcomes; the per-field classifications then roll up into one overall
// confidence verdict. All functions here are pure: evidence is gathered by
// the crawling, extraction, and geocoding adapters and handed in as
// immutable data.
package verify

import (
	"github.com/btrdirectory/surveyor/pkg/developments"
)

// FieldStatus classifies the outcome of one field comparison. Every
// (stored, observed) pair maps to exactly one status; there is no unknown
// or error path.
type FieldStatus string

// Field comparison outcomes.
const (
	Match        FieldStatus = "MATCH"
	Discrepancy  FieldStatus = "DISCREPANCY"
	GapFilled    FieldStatus = "GAP_FILLED"
	NotFound     FieldStatus = "NOT_FOUND"
	StatusChange FieldStatus = "STATUS_CHANGE"
)

// String returns the string representation of a FieldStatus.
func (s FieldStatus) String() string {
	return string(s)
}

// FieldComparison records the outcome of comparing one stored field against
// the observed value, with enough context to audit the decision.
type FieldComparison struct {
	Field      string                  `json:"field_name"`
	Stored     string                  `json:"stored_value,omitempty"`
	Found      string                  `json:"found_value,omitempty"`
	Status     FieldStatus             `json:"status"`
	Confidence developments.Confidence `json:"confidence"`
	SourceURL  string                  `json:"source_url,omitempty"`
	Notes      string                  `json:"notes,omitempty"`
}

// Verification is the reconciliation result for one stored listing.
type Verification struct {
	ListingID      string                  `json:"development_id"`
	Name           string                  `json:"development_name"`
	Slug           string                  `json:"development_slug"`
	Area           string                  `json:"area"`
	OperatorName   string                  `json:"operator_name"`
	AssetOwnerName string                  `json:"asset_owner_name"`
	WebsiteURL     string                  `json:"website_url,omitempty"`
	Comparisons    []FieldComparison       `json:"field_comparisons"`
	DeadLinks      []string                `json:"dead_links,omitempty"`
	Rebranded      bool                    `json:"rebranding_detected"`
	RebrandNotes   string                  `json:"rebranding_notes,omitempty"`
	CrawlErrors    []string                `json:"crawl_errors,omitempty"`
	SourcesChecked int                     `json:"sources_checked"`
	Overall        developments.Confidence `json:"overall_confidence"`
	Notes          string                  `json:"notes,omitempty"`
}

// Page is one crawled web page offered as evidence.
type Page struct {
	URL        string `json:"url"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	Error      string `json:"error,omitempty"`
	DeadLink   bool   `json:"is_dead_link"`
}

// Extraction is the structured output of the text-extraction service for one
// listing: observed field values keyed by field name, each optionally paired
// with a confidence tier reported by the extractor.
type Extraction struct {
	Fields     map[string]string
	Confidence map[string]developments.Confidence
}

// Field returns the extracted value for a field, or "" when absent.
func (e *Extraction) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

// FieldConfidence returns the extractor's confidence for a field, defaulting
// to LOW when unreported.
func (e *Extraction) FieldConfidence(name string) developments.Confidence {
	if e == nil {
		return developments.ConfidenceLow
	}
	if c, ok := e.Confidence[name]; ok {
		return c
	}
	return developments.ConfidenceLow
}

// Field names checked for every listing, in report order.
const (
	FieldOperator       = "operator"
	FieldAssetOwner     = "asset_owner"
	FieldUnits          = "number_of_units"
	FieldStatusName     = "status"
	FieldType           = "development_type"
	FieldRegion         = "region"
	FieldPostcode       = "postcode"
	FieldWebsiteURL     = "website_url"
	FieldDescription    = "description"
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
	FieldCompletionDate = "completion_date"
)

// VerifyFields lists every verified field in report order.
func VerifyFields() []string {
	return []string{
		FieldOperator,
		FieldAssetOwner,
		FieldUnits,
		FieldStatusName,
		FieldType,
		FieldRegion,
		FieldPostcode,
		FieldWebsiteURL,
		FieldDescription,
		FieldLatitude,
		FieldLongitude,
		FieldCompletionDate,
	}
}
