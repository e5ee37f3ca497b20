package verify

import (
	"fmt"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// Overall rolls per-field classifications into one confidence verdict.
// NOT_FOUND comparisons carry no information and are excluded from the
// match ratio; a listing where nothing could be checked is LOW.
func Overall(comparisons []FieldComparison) developments.Confidence {
	if len(comparisons) == 0 {
		return developments.ConfidenceLow
	}

	matches := 0
	checked := 0
	hasDiscrepancy := false
	hasStatusChange := false
	for _, c := range comparisons {
		switch c.Status {
		case NotFound:
			continue
		case Match:
			matches++
		case Discrepancy:
			hasDiscrepancy = true
		case StatusChange:
			hasStatusChange = true
		}
		checked++
	}

	if checked == 0 {
		return developments.ConfidenceLow
	}

	ratio := float64(matches) / float64(checked)
	if ratio >= 0.8 && !hasDiscrepancy && !hasStatusChange {
		return developments.ConfidenceHigh
	}
	if ratio >= 0.5 || hasStatusChange {
		return developments.ConfidenceMedium
	}
	return developments.ConfidenceLow
}

// buildNotes flattens the actionable comparison notes plus link and rebrand
// findings into one report string.
func buildNotes(v *Verification) string {
	var parts []string

	for _, c := range v.Comparisons {
		switch c.Status {
		case Discrepancy, StatusChange, GapFilled:
			if c.Notes != "" {
				parts = append(parts, c.Notes)
			}
		}
	}

	if len(v.DeadLinks) > 0 {
		parts = append(parts, fmt.Sprintf("Dead link(s): %s", strings.Join(v.DeadLinks, ", ")))
	}
	if v.Rebranded {
		parts = append(parts, fmt.Sprintf("Possible rebrand: %s", v.RebrandNotes))
	}

	return strings.Join(parts, " | ")
}
