package verify

import (
	"strings"
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

func TestCompareFieldBothAbsent(t *testing.T) {
	c := CompareField(FieldPostcode, "", "", "", "", 0)
	if c.Status != NotFound {
		t.Errorf("status = %v, want NOT_FOUND", c.Status)
	}
	if c.Confidence != developments.ConfidenceLow {
		t.Errorf("confidence = %v, want LOW", c.Confidence)
	}
}

func TestCompareFieldPlaceholderIsAbsent(t *testing.T) {
	for _, stored := range []string{"TBC", "unknown", " n/a ", "Pending"} {
		c := CompareField(FieldPostcode, stored, "M1 2NH", "https://a.example.com", "", 1)
		if c.Status != GapFilled {
			t.Errorf("stored %q: status = %v, want GAP_FILLED", stored, c.Status)
		}
	}
}

func TestCompareFieldGapFilled(t *testing.T) {
	c := CompareField(FieldPostcode, "", "M1 2NH", "https://www.greystar.co.uk/castings", "greystar.co.uk", 1)
	if c.Status != GapFilled {
		t.Errorf("status = %v, want GAP_FILLED", c.Status)
	}
	if c.Confidence != developments.ConfidenceHigh {
		t.Errorf("operator-site gap fill confidence = %v, want HIGH", c.Confidence)
	}
	if c.Found != "M1 2NH" {
		t.Errorf("found = %q", c.Found)
	}
}

func TestCompareListingBareOperatorDomain(t *testing.T) {
	listing := &developments.Listing{
		ID:       "dev-2",
		Name:     "The Quarters",
		Slug:     "the-quarters",
		Area:     "Leeds",
		Operator: &developments.Organization{Name: "Grainger", Website: "grainger.co.uk"},
	}
	pages := []Page{
		{URL: "https://www.grainger.co.uk/the-quarters", Success: true, Title: "The Quarters", Content: "The Quarters by Grainger offers 375 apartments in Leeds."},
	}
	extraction := &Extraction{Fields: map[string]string{FieldUnits: "375"}}

	v := CompareListing(listing, pages, extraction, nil)

	var units FieldComparison
	for _, c := range v.Comparisons {
		if c.Field == FieldUnits {
			units = c
		}
	}
	if units.Status != GapFilled {
		t.Fatalf("units status = %v, want GAP_FILLED", units.Status)
	}
	if units.Confidence != developments.ConfidenceHigh {
		t.Errorf("units confidence = %v, want HIGH from the operator's own site", units.Confidence)
	}
}

func TestCompareFieldStoredOnly(t *testing.T) {
	c := CompareField(FieldUnits, "375", "", "", "", 0)
	if c.Status != NotFound {
		t.Errorf("status = %v, want NOT_FOUND", c.Status)
	}
	if c.Stored != "375" {
		t.Errorf("stored = %q", c.Stored)
	}
}

func TestCompareFieldUnitsTolerance(t *testing.T) {
	tests := []struct {
		stored, found string
		want          FieldStatus
	}{
		{"120", "123", Match},
		{"120", "125", Match},
		{"120", "126", Discrepancy},
		{"120", "130", Discrepancy},
		{"375", "375", Match},
	}

	for _, tt := range tests {
		c := CompareField(FieldUnits, tt.stored, tt.found, "https://a.example.com", "", 1)
		if c.Status != tt.want {
			t.Errorf("units %s vs %s: status = %v, want %v", tt.stored, tt.found, c.Status, tt.want)
		}
	}
}

func TestCompareFieldPostcodeNormalized(t *testing.T) {
	c := CompareField(FieldPostcode, "M1 1AD", "m11ad", "https://a.example.com", "", 1)
	if c.Status != Match {
		t.Errorf("status = %v, want MATCH after normalization", c.Status)
	}
}

func TestCompareFieldCoordinateTolerance(t *testing.T) {
	match := CompareField(FieldLatitude, "53.4808", "53.48move", "", "", 0)
	_ = match // parse failure falls back to string compare below

	c := CompareField(FieldLatitude, "53.4808", "53.4809", "postcodes.io", "", 0)
	if c.Status != Match {
		t.Errorf("0.0001 apart: status = %v, want MATCH", c.Status)
	}

	c = CompareField(FieldLatitude, "53.4808", "53.4908", "postcodes.io", "", 0)
	if c.Status != Discrepancy {
		t.Errorf("0.01 apart: status = %v, want DISCREPANCY", c.Status)
	}
}

func TestCompareFieldStatusProgression(t *testing.T) {
	c := CompareField(FieldStatusName, "Under Construction", "now letting", "https://a.example.com", "", 2)
	if c.Status != StatusChange {
		t.Errorf("status = %v, want STATUS_CHANGE", c.Status)
	}
	if !strings.Contains(c.Notes, "changed") {
		t.Errorf("progression note missing: %q", c.Notes)
	}
}

func TestCompareFieldStatusDisagreement(t *testing.T) {
	// Any status inequality is a STATUS_CHANGE, never a plain discrepancy.
	c := CompareField(FieldStatusName, "Operational", "In Planning", "https://a.example.com", "", 2)
	if c.Status != StatusChange {
		t.Errorf("status = %v, want STATUS_CHANGE", c.Status)
	}
}

func TestCompareFieldStatusSynonymMatch(t *testing.T) {
	c := CompareField(FieldStatusName, "Operational", "now letting", "https://a.example.com", "", 1)
	if c.Status != Match {
		t.Errorf("status = %v, want MATCH via synonym normalization", c.Status)
	}
}

func TestCompareFieldDescriptionAlwaysMatches(t *testing.T) {
	c := CompareField(FieldDescription, "A canal-side development in Manchester.", "Totally different text about something else entirely.", "https://a.example.com", "", 1)
	if c.Status != Match {
		t.Errorf("both descriptions present: status = %v, want MATCH", c.Status)
	}
}

func TestCompareFieldStringDiscrepancy(t *testing.T) {
	c := CompareField(FieldOperator, "Greystar", "Get Living", "https://news.example.com", "", 1)
	if c.Status != Discrepancy {
		t.Errorf("status = %v, want DISCREPANCY", c.Status)
	}
	if c.Confidence != developments.ConfidenceLow {
		t.Errorf("single anonymous crawl: confidence = %v, want LOW", c.Confidence)
	}
}

func TestCompareFieldCaseInsensitiveMatch(t *testing.T) {
	c := CompareField(FieldOperator, "Greystar", "  greystar ", "https://a.example.com", "", 1)
	if c.Status != Match {
		t.Errorf("status = %v, want MATCH", c.Status)
	}
	if c.Confidence != developments.ConfidenceHigh {
		t.Errorf("match confidence = %v, want HIGH", c.Confidence)
	}
}

func TestDescriptionsMatchOverlap(t *testing.T) {
	a := "a modern build to rent development in central manchester with gym and roof terrace"
	if !descriptionsMatch(a, a) {
		t.Error("identical descriptions should match")
	}
	if descriptionsMatch(a, "student accommodation in birmingham near the university campus") {
		t.Error("unrelated descriptions should not match")
	}
}

func TestCompareListingEndToEnd(t *testing.T) {
	units := 120
	listing := &developments.Listing{
		ID:            "dev-1",
		Name:          "The Castings",
		Slug:          "the-castings",
		Area:          "Manchester",
		Status:        "Under Construction",
		NumberOfUnits: &units,
		Operator:      &developments.Organization{Name: "Greystar", Website: "https://www.greystar.co.uk"},
	}
	pages := []Page{
		{URL: "https://www.greystar.co.uk/castings", Success: true, Title: "The Castings", Content: "The Castings is now letting apartments in Manchester."},
		{URL: "https://old.example.com/castings", Success: false, StatusCode: 404, DeadLink: true},
	}
	extraction := &Extraction{
		Fields: map[string]string{
			"operator_name":   "Greystar",
			"number_of_units": "123",
			"status":          "Operational",
			"postcode":        "M1 2NH",
		},
	}

	v := CompareListing(listing, pages, extraction, nil)

	if v.ListingID != "dev-1" || v.SourcesChecked != 2 {
		t.Errorf("header fields wrong: %+v", v)
	}
	if len(v.DeadLinks) != 1 || v.DeadLinks[0] != "https://old.example.com/castings" {
		t.Errorf("dead links = %v", v.DeadLinks)
	}
	if len(v.Comparisons) != len(VerifyFields()) {
		t.Fatalf("got %d comparisons, want %d", len(v.Comparisons), len(VerifyFields()))
	}

	byField := make(map[string]FieldComparison)
	for _, c := range v.Comparisons {
		byField[c.Field] = c
	}

	if byField[FieldOperator].Status != Match {
		t.Errorf("operator: %v, want MATCH", byField[FieldOperator].Status)
	}
	if byField[FieldUnits].Status != Match {
		t.Errorf("units 120 vs 123: %v, want MATCH", byField[FieldUnits].Status)
	}
	if byField[FieldStatusName].Status != StatusChange {
		t.Errorf("status: %v, want STATUS_CHANGE", byField[FieldStatusName].Status)
	}
	if byField[FieldPostcode].Status != GapFilled {
		t.Errorf("postcode: %v, want GAP_FILLED", byField[FieldPostcode].Status)
	}
	if byField[FieldAssetOwner].Status != NotFound {
		t.Errorf("asset owner: %v, want NOT_FOUND", byField[FieldAssetOwner].Status)
	}
	if !strings.Contains(v.Notes, "Status appears to have changed") {
		t.Errorf("notes missing status change: %q", v.Notes)
	}
	if !strings.Contains(v.Notes, "Dead link") {
		t.Errorf("notes missing dead link: %q", v.Notes)
	}
}
