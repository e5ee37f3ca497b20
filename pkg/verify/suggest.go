package verify

import (
	"fmt"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/sources"
)

// extractionSource is the provenance identifier for values suggested by the
// text-extraction service rather than observed at a specific URL.
const extractionSource = "llm_analysis"

// SuggestEnrichments proposes values for listing fields that are empty in
// the database, drawn from geocode data and extraction output. The returned
// comparisons are all GAP_FILLED and supplement, not replace, the
// comparator's output.
func SuggestEnrichments(listing *developments.Listing, extraction *Extraction, geo *developments.Geolocation) []FieldComparison {
	var suggestions []FieldComparison

	gapFilled := func(field, found string, confidence developments.Confidence, source, notes string) {
		suggestions = append(suggestions, FieldComparison{
			Field:      field,
			Found:      found,
			Status:     GapFilled,
			Confidence: confidence,
			SourceURL:  source,
			Notes:      notes,
		})
	}

	// Geocode-derived coordinates and region are always HIGH: the lookup is
	// keyed on the listing's own postcode.
	if geo != nil && geo.Valid {
		if listing.Latitude == nil && geo.Latitude != nil {
			gapFilled(FieldLatitude, formatCoordinate(geo.Latitude), developments.ConfidenceHigh, sources.Geocoder, "Derived from postcode")
		}
		if listing.Longitude == nil && geo.Longitude != nil {
			gapFilled(FieldLongitude, formatCoordinate(geo.Longitude), developments.ConfidenceHigh, sources.Geocoder, "Derived from postcode")
		}
		if listing.Region == "" && geo.Region != "" {
			gapFilled(FieldRegion, geo.Region.String(), developments.ConfidenceHigh, sources.Geocoder, "Derived from postcode")
		}
	}

	if extraction == nil {
		return suggestions
	}

	scalarFields := []struct {
		listingField    string
		extractionField string
		stored          string
	}{
		{FieldUnits, "number_of_units", storedValue(listing, FieldUnits)},
		{FieldStatusName, "status", listing.Status},
		{FieldDescription, "description", listing.Description},
		{"area", "area", listing.Area},
		{FieldCompletionDate, "completion_date", listing.CompletionDate},
		{FieldType, "development_type", listing.Type},
		{FieldWebsiteURL, "website_url", listing.WebsiteURL},
	}
	for _, f := range scalarFields {
		if f.stored != "" {
			continue
		}
		found := extraction.Field(f.extractionField)
		if found == "" {
			continue
		}
		confidence := extraction.FieldConfidence(f.extractionField)
		gapFilled(f.listingField, found, confidence, extractionSource,
			fmt.Sprintf("Extracted from web content (confidence: %s)", confidence))
	}

	if listing.OperatorName() == "" {
		if found := extraction.Field("operator_name"); found != "" {
			gapFilled(FieldOperator, found, extraction.FieldConfidence("operator_name"), extractionSource,
				"Operator identified from web content")
		}
	}
	if listing.AssetOwnerName() == "" {
		if found := extraction.Field("asset_owner_name"); found != "" {
			gapFilled(FieldAssetOwner, found, extraction.FieldConfidence("asset_owner_name"), extractionSource,
				"Asset owner identified from web content")
		}
	}

	return suggestions
}
