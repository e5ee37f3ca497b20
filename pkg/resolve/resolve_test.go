package resolve

import (
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

func strptr(s string) *string { return &s }

func obs(name, source string) developments.Observation {
	return developments.Observation{Name: name, SourceURL: source}
}

func TestResolveMergesExactSlug(t *testing.T) {
	r := New()
	devs := r.Resolve([]developments.Observation{
		obs("The Quarters", "https://a.example.com"),
		obs("the quarters", "https://b.example.com"),
	})

	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1", len(devs))
	}
	if devs[0].Slug != "the-quarters" {
		t.Errorf("slug = %q, want the-quarters", devs[0].Slug)
	}
	if len(devs[0].SourceURLs) != 2 {
		t.Errorf("got %d source URLs, want 2", len(devs[0].SourceURLs))
	}
}

func TestResolveMergesSubstringContainment(t *testing.T) {
	r := New()
	devs := r.Resolve([]developments.Observation{
		obs("Kampus", "https://a.example.com"),
		obs("Kampus Manchester", "https://b.example.com"),
	})

	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1", len(devs))
	}
	// First observation's slug names the cluster.
	if devs[0].Slug != "kampus" {
		t.Errorf("slug = %q, want kampus", devs[0].Slug)
	}
}

func TestResolveMergesSlugPrefixWithinDrift(t *testing.T) {
	r := New()
	devs := r.Resolve([]developments.Observation{
		obs("Angel Gardens", "https://a.example.com"),
		obs("Angel Gardens 2", "https://b.example.com"),
	})

	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1 (prefix within drift should merge)", len(devs))
	}
}

func TestResolveKeepsDistinctNamesApart(t *testing.T) {
	r := New()
	devs := r.Resolve([]developments.Observation{
		obs("Clippers Quay", "https://a.example.com"),
		obs("Anchorage Gateway", "https://b.example.com"),
		obs("New Victoria", "https://c.example.com"),
	})

	if len(devs) != 3 {
		t.Fatalf("got %d developments, want 3", len(devs))
	}
}

func TestResolveDropsShortNames(t *testing.T) {
	r := New()
	devs := r.Resolve([]developments.Observation{
		obs("V2", "https://a.example.com"),
		obs("", "https://b.example.com"),
		obs("The Castings", "https://c.example.com"),
	})

	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1", len(devs))
	}
	if devs[0].Name != "The Castings" {
		t.Errorf("name = %q, want The Castings", devs[0].Name)
	}
}

func TestResolveFirstNonEmptyMerge(t *testing.T) {
	r := New()
	first := obs("Vox Manchester", "https://news.example.com")
	first.Area = strptr("Manchester")
	first.Status = strptr("Under Construction")

	second := obs("Vox Manchester", "https://portal.example.com")
	second.Area = strptr("Salford")
	second.Postcode = strptr("M15 4ZH")
	second.NumberOfUnits = strptr("280")

	devs := r.Resolve([]developments.Observation{first, second})
	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1", len(devs))
	}

	dev := devs[0]
	if dev.Area != "Manchester" {
		t.Errorf("area = %q, want first-seen Manchester", dev.Area)
	}
	if dev.Postcode != "M15 4ZH" {
		t.Errorf("postcode = %q, want gap-filled M15 4ZH", dev.Postcode)
	}
	if dev.NumberOfUnits == nil || *dev.NumberOfUnits != 280 {
		t.Errorf("units = %v, want 280", dev.NumberOfUnits)
	}
	if dev.Status != developments.StatusUnderConstruction {
		t.Errorf("status = %q, want Under Construction", dev.Status)
	}
}

func TestResolveDropsInvalidVocabulary(t *testing.T) {
	r := New()
	o := obs("Springside Wharf", "https://a.example.com")
	o.Region = strptr("Greater Manchester")
	o.Status = strptr("Demolished")
	o.NumberOfUnits = strptr("about 400")

	devs := r.Resolve([]developments.Observation{o})
	if len(devs) != 1 {
		t.Fatalf("got %d developments, want 1", len(devs))
	}
	if devs[0].Region != "" {
		t.Errorf("invalid region kept: %q", devs[0].Region)
	}
	if devs[0].Status != "" {
		t.Errorf("invalid status kept: %q", devs[0].Status)
	}
	if devs[0].NumberOfUnits != nil {
		t.Errorf("unparsable unit count kept: %v", *devs[0].NumberOfUnits)
	}
}

func TestResolveDeterministic(t *testing.T) {
	input := []developments.Observation{
		obs("The Quarters", "https://a.example.com"),
		obs("The Quarters Phase 2", "https://b.example.com"),
		obs("Clippers Quay", "https://c.example.com"),
		obs("the quarters", "https://d.example.com"),
	}

	r := New()
	first := r.Resolve(input)
	second := r.Resolve(input)

	if len(first) != len(second) {
		t.Fatalf("nondeterministic cluster count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Slug != second[i].Slug || first[i].ConfidenceScore != second[i].ConfidenceScore {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestResolveSortedByScore(t *testing.T) {
	rich := obs("Springside Wharf", "https://a.example.com")
	rich.Postcode = strptr("BD1 4AA")
	rich.Area = strptr("Bradford")
	rich.NumberOfUnits = strptr("350")
	rich.OperatorName = strptr("Placefirst")

	devs := New().Resolve([]developments.Observation{
		obs("Bare Name", "https://b.example.com"),
		rich,
	})

	if len(devs) != 2 {
		t.Fatalf("got %d developments, want 2", len(devs))
	}
	if devs[0].Name != "Springside Wharf" {
		t.Errorf("richest development should sort first, got %q", devs[0].Name)
	}
	if devs[0].ConfidenceScore < devs[1].ConfidenceScore {
		t.Error("results not sorted by score descending")
	}
}

func TestResolveMinMatchLengthOption(t *testing.T) {
	input := []developments.Observation{
		obs("Kampus", "https://a.example.com"),
		obs("Kampus Manchester", "https://b.example.com"),
	}

	// A match length no name can reach disables both fuzzy rules, leaving
	// only exact slug matches.
	strict := New(WithMinMatchLength(100)).Resolve(input)
	if len(strict) != 2 {
		t.Fatalf("strict matching: got %d developments, want 2", len(strict))
	}

	if devs := New().Resolve(input); len(devs) != 1 {
		t.Fatalf("default matching: got %d developments, want 1", len(devs))
	}
}
