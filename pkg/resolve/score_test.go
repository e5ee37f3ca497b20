package resolve

import (
	"math"
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

func intptr(n int) *int { return &n }

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestScoreBounds(t *testing.T) {
	empty := &developments.Development{}
	if s := Score(empty); s != 0 {
		t.Errorf("empty development scored %v, want 0", s)
	}

	units := 375
	full := &developments.Development{
		Name:          "The Castings",
		Postcode:      "M1 2NH",
		Area:          "Manchester",
		Region:        developments.RegionNorthWest,
		NumberOfUnits: &units,
		Status:        developments.StatusOperational,
		OperatorName:  "Greystar",
		SourceURLs: []string{
			"https://btrnews.co.uk/castings",
			"https://www.rightmove.co.uk/castings",
			"https://propertyweek.com/castings",
			"https://zoopla.co.uk/castings",
		},
	}
	s := Score(full)
	if s <= 0 || s > 1.0 {
		t.Errorf("full development scored %v, want (0, 1]", s)
	}
}

func TestScoreFieldContributions(t *testing.T) {
	base := &developments.Development{Name: "Clippers Quay"}
	baseScore := Score(base)

	withPostcode := *base
	withPostcode.Postcode = "M50 3ZB"
	if got := Score(&withPostcode); !closeTo(got-baseScore, 0.10) {
		t.Errorf("postcode contribution = %v, want %v", got-baseScore, 0.10)
	}

	withUnits := *base
	withUnits.NumberOfUnits = intptr(614)
	if got := Score(&withUnits); !closeTo(got-baseScore, 0.10) {
		t.Errorf("units contribution = %v, want %v", got-baseScore, 0.10)
	}

	// Presence is what counts, not the magnitude.
	withZeroUnits := *base
	withZeroUnits.NumberOfUnits = intptr(0)
	if got := Score(&withZeroUnits); !closeTo(got-baseScore, 0.10) {
		t.Errorf("zero-units contribution = %v, want %v", got-baseScore, 0.10)
	}
}

func TestScoreSourceCountTiers(t *testing.T) {
	mk := func(urls ...string) *developments.Development {
		return &developments.Development{Name: "Local Crescent", SourceURLs: urls}
	}

	one := Score(mk("https://a.example.com"))
	two := Score(mk("https://a.example.com", "https://b.example.com"))
	three := Score(mk("https://a.example.com", "https://b.example.com", "https://c.example.com"))

	if !(one < two && two < three) {
		t.Errorf("source tiers not monotonic: %v, %v, %v", one, two, three)
	}
	if !closeTo(three-one, 0.15) {
		t.Errorf("three-source bonus over one = %v, want 0.15", three-one)
	}
}

func TestScoreSourceTypeBonuses(t *testing.T) {
	plain := Score(&developments.Development{
		Name:       "New Victoria",
		SourceURLs: []string{"https://anonymous.example.com"},
	})
	news := Score(&developments.Development{
		Name:       "New Victoria",
		SourceURLs: []string{"https://btrnews.co.uk/new-victoria"},
	})
	portal := Score(&developments.Development{
		Name:       "New Victoria",
		SourceURLs: []string{"https://www.rightmove.co.uk/new-victoria"},
	})

	if !closeTo(news-plain, 0.02) {
		t.Errorf("news bonus = %v, want 0.02", news-plain)
	}
	if !closeTo(portal-plain, 0.03) {
		t.Errorf("portal bonus = %v, want 0.03", portal-plain)
	}
}

func TestScoreDeterministic(t *testing.T) {
	dev := &developments.Development{
		Name:       "Springside Wharf",
		Postcode:   "BD1 4AA",
		SourceURLs: []string{"https://placefirst.co.uk/springside"},
	}
	if Score(dev) != Score(dev) {
		t.Error("score not deterministic")
	}
}
