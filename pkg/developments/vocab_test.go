package developments

import "testing"

func TestConfidenceForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{1.0, ConfidenceHigh},
		{0.7, ConfidenceHigh},
		{0.69, ConfidenceMedium},
		{0.4, ConfidenceMedium},
		{0.39, ConfidenceLow},
		{0.0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ConfidenceForScore(tt.score); got != tt.want {
			t.Errorf("ConfidenceForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestParseConfidence(t *testing.T) {
	if c, ok := ParseConfidence(" high "); !ok || c != ConfidenceHigh {
		t.Errorf("ParseConfidence(high) = (%v, %v)", c, ok)
	}
	if c, ok := ParseConfidence("MEDIUM"); !ok || c != ConfidenceMedium {
		t.Errorf("ParseConfidence(MEDIUM) = (%v, %v)", c, ok)
	}
	if c, ok := ParseConfidence("certain"); ok || c != ConfidenceLow {
		t.Errorf("ParseConfidence(certain) = (%v, %v), want (LOW, false)", c, ok)
	}
}

func TestStatusRank(t *testing.T) {
	if StatusInPlanning.Rank() != 0 || StatusUnderConstruction.Rank() != 1 || StatusOperational.Rank() != 2 {
		t.Error("status ranks out of lifecycle order")
	}
	if Status("Demolished").Rank() != -1 {
		t.Error("unknown status should rank -1")
	}
	if !(StatusInPlanning.Rank() < StatusUnderConstruction.Rank() && StatusUnderConstruction.Rank() < StatusOperational.Rank()) {
		t.Error("lifecycle order violated")
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("Operational"); !ok || s != StatusOperational {
		t.Errorf("ParseStatus(Operational) = (%v, %v)", s, ok)
	}
	// Synonyms are NormalizeStatus territory, not ParseStatus.
	if _, ok := ParseStatus("operational"); ok {
		t.Error("ParseStatus should not accept lowercase synonyms")
	}
}

func TestParseType(t *testing.T) {
	if dt, ok := ParseType("Single Family"); !ok || dt != TypeSingleFamily {
		t.Errorf("ParseType(Single Family) = (%v, %v)", dt, ok)
	}
	if dt, ok := ParseType("co-living"); ok || dt != TypeMultifamily {
		t.Errorf("ParseType(co-living) = (%v, %v), want Multifamily fallback", dt, ok)
	}
}

func TestParseRegion(t *testing.T) {
	valid := []string{"London", "Yorkshire and The Humber", "Northern Ireland"}
	for _, s := range valid {
		if _, ok := ParseRegion(s); !ok {
			t.Errorf("ParseRegion(%q) should succeed", s)
		}
	}
	invalid := []string{"Greater Manchester", "Yorkshire", "yorkshire and the humber", ""}
	for _, s := range invalid {
		if r, ok := ParseRegion(s); ok {
			t.Errorf("ParseRegion(%q) = %v, should be rejected", s, r)
		}
	}
	if len(Regions()) != 12 {
		t.Errorf("Regions() returned %d entries, want 12", len(Regions()))
	}
}
