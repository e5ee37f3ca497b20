package verify

import (
	"strconv"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/sources"
)

// storedValue extracts the stored side of a comparison from the listing.
// Absent values come back as "".
func storedValue(listing *developments.Listing, field string) string {
	switch field {
	case FieldOperator:
		return listing.OperatorName()
	case FieldAssetOwner:
		return listing.AssetOwnerName()
	case FieldUnits:
		if listing.NumberOfUnits == nil {
			return ""
		}
		return strconv.Itoa(*listing.NumberOfUnits)
	case FieldStatusName:
		return listing.Status
	case FieldType:
		return listing.Type
	case FieldRegion:
		return listing.Region
	case FieldPostcode:
		return listing.Postcode
	case FieldWebsiteURL:
		return listing.WebsiteURL
	case FieldDescription:
		return listing.Description
	case FieldLatitude:
		return formatCoordinate(listing.Latitude)
	case FieldLongitude:
		return formatCoordinate(listing.Longitude)
	case FieldCompletionDate:
		return listing.CompletionDate
	}
	return ""
}

// foundValue extracts the observed side of a comparison, preferring the
// geocoding service for location fields because its output is already
// validated. Extracted regions outside the fixed vocabulary are discarded
// rather than compared — the extractor regularly invents counties.
func foundValue(field string, extraction *Extraction, geo *developments.Geolocation) string {
	switch field {
	case FieldOperator:
		return extraction.Field("operator_name")
	case FieldAssetOwner:
		return extraction.Field("asset_owner_name")
	case FieldRegion:
		if geo != nil && geo.Valid && geo.Region != "" {
			return geo.Region.String()
		}
		if raw := extraction.Field("region"); raw != "" {
			if r, ok := developments.ParseRegion(raw); ok {
				return r.String()
			}
		}
		return ""
	case FieldPostcode:
		if geo != nil && geo.Valid {
			return geo.Postcode
		}
		return extraction.Field("postcode")
	case FieldLatitude:
		if geo != nil && geo.Valid {
			return formatCoordinate(geo.Latitude)
		}
		return ""
	case FieldLongitude:
		if geo != nil && geo.Valid {
			return formatCoordinate(geo.Longitude)
		}
		return ""
	}
	return extraction.Field(field)
}

// sourceFor determines the provenance identifier for a field's observed
// value: the geocoder sentinel for geocode-derived fields, otherwise the
// first successful crawl URL.
func sourceFor(field string, geo *developments.Geolocation, pages []Page) string {
	switch field {
	case FieldLatitude, FieldLongitude:
		if geo != nil && geo.Valid {
			return sources.Geocoder
		}
	case FieldRegion:
		if geo != nil && geo.Valid && geo.Region != "" {
			return sources.Geocoder
		}
	case FieldPostcode:
		if geo != nil && geo.Valid {
			return sources.Geocoder
		}
	}

	for _, page := range pages {
		if page.Success {
			return page.URL
		}
	}
	return ""
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
