package resolve

import (
	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/sources"
)

// Scoring contributions. Each signal is independent and additive; the total
// is capped at 1.0.
const (
	scoreName     = 0.15
	scorePostcode = 0.10
	scoreArea     = 0.05
	scoreRegion   = 0.05
	scoreUnits    = 0.10
	scoreStatus   = 0.07
	scoreOperator = 0.08

	scoreThreeSources = 0.20
	scoreTwoSources   = 0.15
	scoreOneSource    = 0.05

	scorePerNewsSource   = 0.02
	scorePerPortalSource = 0.03
)

// Score assigns a confidence score in [0, 1] based on field completeness and
// provenance. Deterministic: the same development always scores the same.
func Score(dev *developments.Development) float64 {
	score := 0.0

	if len(dev.Name) > 2 {
		score += scoreName
	}
	if dev.Postcode != "" {
		score += scorePostcode
	}
	if dev.Area != "" {
		score += scoreArea
	}
	if dev.Region != "" {
		score += scoreRegion
	}
	if dev.NumberOfUnits != nil {
		score += scoreUnits
	}
	if dev.Status != "" {
		score += scoreStatus
	}
	if dev.OperatorName != "" {
		score += scoreOperator
	}

	switch n := len(dev.SourceURLs); {
	case n >= 3:
		score += scoreThreeSources
	case n == 2:
		score += scoreTwoSources
	case n == 1:
		score += scoreOneSource
	}

	for _, url := range dev.SourceURLs {
		switch sources.Classify(url, "") {
		case sources.News:
			score += scorePerNewsSource
		case sources.PropertyPortal:
			score += scorePerPortalSource
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
