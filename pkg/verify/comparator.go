package verify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/sources"
)

// Stored values that mean "nobody filled this in yet" rather than real data.
var placeholderValues = map[string]bool{
	"to be confirmed": true,
	"tbc":             true,
	"tbd":             true,
	"unknown":         true,
	"n/a":             true,
	"none":            true,
	"pending":         true,
}

func isPlaceholder(val string) bool {
	return placeholderValues[strings.ToLower(strings.TrimSpace(val))]
}

// Tolerances for numeric field equality.
const (
	unitTolerance       = 5
	coordinateTolerance = 0.001
	descriptionOverlap  = 0.6
	descriptionWindow   = 200
)

// CompareListing compares every verified field of a stored listing against
// the observed evidence and returns a complete Verification. It never fails:
// malformed evidence degrades to NOT_FOUND or string comparison, and every
// field receives exactly one classification.
func CompareListing(listing *developments.Listing, pages []Page, extraction *Extraction, geo *developments.Geolocation) Verification {
	v := Verification{
		ListingID:      listing.ID,
		Name:           listing.Name,
		Slug:           listing.Slug,
		Area:           listing.Area,
		OperatorName:   listing.OperatorName(),
		AssetOwnerName: listing.AssetOwnerName(),
		WebsiteURL:     listing.WebsiteURL,
		SourcesChecked: len(pages),
	}

	for _, page := range pages {
		if page.DeadLink {
			v.DeadLinks = append(v.DeadLinks, page.URL)
		}
	}

	for _, page := range pages {
		if !page.Success || page.Content == "" {
			continue
		}
		// Name-not-found rebrand checks only make sense on the listing's own
		// dedicated page, not the operator homepage.
		dedicated := listing.WebsiteURL != "" && page.URL == listing.WebsiteURL
		if rebranded, notes := DetectRebranding(page.Title, page.Content, listing.Name, dedicated); rebranded {
			v.Rebranded = true
			v.RebrandNotes = notes
			break
		}
	}

	operatorDomain := ""
	if listing.Operator != nil && listing.Operator.Website != "" {
		operatorDomain = developments.Domain(listing.Operator.Website)
	}

	for _, field := range VerifyFields() {
		stored := storedValue(listing, field)
		found := foundValue(field, extraction, geo)
		source := sourceFor(field, geo, pages)
		v.Comparisons = append(v.Comparisons, CompareField(field, stored, found, source, operatorDomain, successCount(pages)))
	}

	v.Overall = Overall(v.Comparisons)
	v.Notes = buildNotes(&v)
	return v
}

// CompareField classifies one field. Empty strings stand for absent values;
// stored placeholder tokens count as absent too.
func CompareField(field, stored, found, sourceURL, operatorDomain string, successfulCrawls int) FieldComparison {
	storedEmpty := strings.TrimSpace(stored) == "" || isPlaceholder(stored)
	foundEmpty := strings.TrimSpace(found) == ""

	switch {
	case storedEmpty && foundEmpty:
		return FieldComparison{Field: field, Status: NotFound, Confidence: developments.ConfidenceLow, SourceURL: sourceURL}

	case storedEmpty:
		confidence := sources.Confidence(sourceURL, operatorDomain, successfulCrawls)
		return FieldComparison{
			Field:      field,
			Found:      found,
			Status:     GapFilled,
			Confidence: confidence,
			SourceURL:  sourceURL,
			Notes:      fmt.Sprintf("Field was empty — suggested value from %s", sources.Label(sourceURL)),
		}

	case foundEmpty:
		return FieldComparison{
			Field:      field,
			Stored:     stored,
			Status:     NotFound,
			Confidence: developments.ConfidenceLow,
			SourceURL:  sourceURL,
			Notes:      "Could not verify — no data found online",
		}
	}

	// Descriptions are always paraphrased by the extraction service, so a
	// textual mismatch is never actionable. Both present means MATCH.
	if field == FieldDescription {
		return FieldComparison{
			Field:      field,
			Stored:     stored,
			Found:      found,
			Status:     Match,
			Confidence: developments.ConfidenceHigh,
			SourceURL:  sourceURL,
			Notes:      "Description exists in both stored data and web source",
		}
	}

	if fieldsMatch(field, stored, found) {
		return FieldComparison{
			Field:      field,
			Stored:     stored,
			Found:      found,
			Status:     Match,
			Confidence: developments.ConfidenceHigh,
			SourceURL:  sourceURL,
		}
	}

	confidence := sources.Confidence(sourceURL, operatorDomain, successfulCrawls)
	if field == FieldStatusName {
		notes := fmt.Sprintf("Status may need updating: %q -> %q", stored, found)
		if isStatusProgression(stored, found) {
			notes = fmt.Sprintf("Status appears to have changed from %q to %q", stored, found)
		}
		return FieldComparison{
			Field:      field,
			Stored:     stored,
			Found:      found,
			Status:     StatusChange,
			Confidence: confidence,
			SourceURL:  sourceURL,
			Notes:      notes,
		}
	}

	notes := fmt.Sprintf("Stored: %q vs Found: %q", stored, found)
	if field == FieldUnits {
		notes = fmt.Sprintf("Unit count mismatch — stored: %s, found: %s", stored, found)
	}
	return FieldComparison{
		Field:      field,
		Stored:     stored,
		Found:      found,
		Status:     Discrepancy,
		Confidence: confidence,
		SourceURL:  sourceURL,
		Notes:      notes,
	}
}

// fieldsMatch applies the field-specific equality test. Numeric fields fall
// back to trimmed string equality when either side fails to parse.
func fieldsMatch(field, stored, found string) bool {
	switch field {
	case FieldPostcode:
		return developments.NormalizePostcode(stored) == developments.NormalizePostcode(found)

	case FieldUnits:
		s, serr := strconv.Atoi(strings.TrimSpace(stored))
		f, ferr := strconv.Atoi(strings.TrimSpace(found))
		if serr == nil && ferr == nil {
			return abs(s-f) <= unitTolerance
		}
		return strings.TrimSpace(stored) == strings.TrimSpace(found)

	case FieldLatitude, FieldLongitude:
		s, serr := strconv.ParseFloat(strings.TrimSpace(stored), 64)
		f, ferr := strconv.ParseFloat(strings.TrimSpace(found), 64)
		if serr == nil && ferr == nil {
			return math.Abs(s-f) < coordinateTolerance
		}
		return strings.TrimSpace(stored) == strings.TrimSpace(found)

	case FieldStatusName:
		return developments.NormalizeStatus(stored) == developments.NormalizeStatus(found)

	case FieldDescription:
		return descriptionsMatch(stored, found)
	}

	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(found))
}

// descriptionsMatch checks word overlap between the first 200 characters of
// each description. Retained even though the comparator currently reports
// MATCH whenever both descriptions are present.
func descriptionsMatch(stored, found string) bool {
	s := truncate(strings.TrimSpace(strings.ToLower(stored)), descriptionWindow)
	f := truncate(strings.TrimSpace(strings.ToLower(found)), descriptionWindow)

	sWords := wordSet(s)
	fWords := wordSet(f)
	if len(sWords) == 0 || len(fWords) == 0 {
		return s == f
	}

	overlap := 0
	for w := range sWords {
		if fWords[w] {
			overlap++
		}
	}
	larger := len(sWords)
	if len(fWords) > larger {
		larger = len(fWords)
	}
	return float64(overlap)/float64(larger) > descriptionOverlap
}

// isStatusProgression reports whether the observed status is strictly later
// in the lifecycle than the stored one. Regression is deliberately not
// flagged as progression.
func isStatusProgression(stored, found string) bool {
	s, _ := developments.ParseStatus(developments.NormalizeStatus(stored))
	f, _ := developments.ParseStatus(developments.NormalizeStatus(found))
	return s.Rank() < f.Rank()
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func successCount(pages []Page) int {
	n := 0
	for _, p := range pages {
		if p.Success {
			n++
		}
	}
	return n
}
