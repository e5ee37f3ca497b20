package sources

import (
	"testing"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		operatorDomain string
		want           Type
	}{
		{"operator site", "https://www.greystar.co.uk/properties/castings", "greystar.co.uk", OperatorWebsite},
		{"operator beats portal list", "https://www.rightmove.co.uk/greystar", "rightmove.co.uk", OperatorWebsite},
		{"portal", "https://www.rightmove.co.uk/properties/12345", "", PropertyPortal},
		{"portal subdomain", "https://media.zoopla.co.uk/img", "", PropertyPortal},
		{"news", "https://btrnews.co.uk/article/new-scheme", "", News},
		{"trade press", "https://www.propertyweek.com/news/story", "", News},
		{"planning portal", "https://planning.manchester.gov.uk/application", "", Planning},
		{"planning pipe", "https://www.planningpipe.com/app/123", "", Planning},
		{"anything else", "https://random.example.com/page", "", Other},
		{"empty", "", "", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.url, tt.operatorDomain)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %v, want %v", tt.url, tt.operatorDomain, got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name           string
		sourceURL      string
		operatorDomain string
		crawls         int
		want           developments.Confidence
	}{
		{"no source", "", "", 5, developments.ConfidenceLow},
		{"geocoder sentinel", Geocoder, "", 0, developments.ConfidenceHigh},
		{"operator website", "https://www.greystar.co.uk/castings", "greystar.co.uk", 0, developments.ConfidenceHigh},
		{"corroborated", "https://news.example.com/story", "", 2, developments.ConfidenceMedium},
		{"single crawl", "https://news.example.com/story", "", 1, developments.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.sourceURL, tt.operatorDomain, tt.crawls)
			if got != tt.want {
				t.Errorf("Confidence(%q, %q, %d) = %v, want %v", tt.sourceURL, tt.operatorDomain, tt.crawls, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := Label(Geocoder); got != "postcodes.io API" {
		t.Errorf("Label(geocoder) = %q", got)
	}
	if got := Label(""); got != "web sources" {
		t.Errorf("Label(empty) = %q", got)
	}
	if got := Label("https://www.greystar.co.uk/castings"); got != "greystar.co.uk" {
		t.Errorf("Label(url) = %q", got)
	}
	if got := Label("llm_analysis"); got != "llm_analysis" {
		t.Errorf("Label(sentinel) = %q", got)
	}
}
