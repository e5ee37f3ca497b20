package verify

import (
	"strings"
	"testing"
)

func TestDetectRebrandingKeyword(t *testing.T) {
	content := "Welcome to Union Place, formerly known as The Quarters, in the heart of Leeds."
	rebranded, notes := DetectRebranding("Union Place", content, "The Quarters", false)
	if !rebranded {
		t.Fatal("rebrand keyword should trigger on any page")
	}
	if !strings.Contains(notes, "formerly known as") {
		t.Errorf("notes = %q", notes)
	}
}

func TestDetectRebrandingNameNotFound(t *testing.T) {
	content := "Luxury apartments now letting in central Leeds. Book a viewing today."
	rebranded, notes := DetectRebranding("Union Place Leeds", content, "Quarters House", true)
	if !rebranded {
		t.Fatal("stored name absent from dedicated page should trigger")
	}
	if !strings.Contains(notes, "not found") {
		t.Errorf("notes = %q", notes)
	}
}

func TestDetectRebrandingNameNotFoundRequiresDedicatedPage(t *testing.T) {
	content := "Luxury apartments now letting in central Leeds."
	if rebranded, _ := DetectRebranding("Union Place Leeds", content, "Quarters House", false); rebranded {
		t.Error("name-not-found must not trigger on non-dedicated pages")
	}
}

func TestDetectRebrandingNamePresent(t *testing.T) {
	content := "Quarters House offers 200 apartments in Leeds city centre."
	if rebranded, _ := DetectRebranding("Quarters House | Leeds", content, "Quarters House", true); rebranded {
		t.Error("name present in title and content, no rebrand")
	}
}

func TestDetectRebrandingGenericPrefixSkipped(t *testing.T) {
	content := "Apartments available across the development."
	if rebranded, _ := DetectRebranding("Some Page", content, "Plot M0121", true); rebranded {
		t.Error("generic code names must not trigger the name check")
	}
}

func TestDetectRebrandingPunctuationInName(t *testing.T) {
	content := "Traders Wharf apartments overlooking the canal."
	if rebranded, _ := DetectRebranding("Traders Wharf", content, "Trader's Wharf, Leeds", true); rebranded {
		t.Error("apostrophes and the post-comma locality must be ignored when matching")
	}
}

func TestDetectRebrandingEmptyInputs(t *testing.T) {
	if rebranded, _ := DetectRebranding("", "content", "Name", true); rebranded {
		t.Error("empty title should never trigger")
	}
	if rebranded, _ := DetectRebranding("title", "content", "", true); rebranded {
		t.Error("empty stored name should never trigger")
	}
}
