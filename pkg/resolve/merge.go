package resolve

import (
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

// mergeCluster collapses one cluster into a canonical development. The field
// policy is first-non-empty-wins in cluster order; constrained vocabularies
// are dropped to absent rather than guessed when the winning value falls
// outside them.
func mergeCluster(slug string, group []developments.Observation) developments.Development {
	dev := developments.Development{
		Slug: slug,
	}

	dev.Name = firstNonEmpty(group, func(o developments.Observation) *string {
		name := o.Name
		return &name
	})
	if dev.Name == "" && len(group) > 0 {
		dev.Name = group[0].Name
	}

	if region := firstNonEmpty(group, func(o developments.Observation) *string { return o.Region }); region != "" {
		if r, ok := developments.ParseRegion(region); ok {
			dev.Region = r
		}
	}
	if status := firstNonEmpty(group, func(o developments.Observation) *string { return o.Status }); status != "" {
		if s, ok := developments.ParseStatus(status); ok {
			dev.Status = s
		}
	}
	dev.Type, _ = developments.ParseType(firstNonEmpty(group, func(o developments.Observation) *string { return o.DevelopmentType }))

	dev.OperatorName = firstNonEmpty(group, func(o developments.Observation) *string { return o.OperatorName })
	dev.AssetOwnerName = firstNonEmpty(group, func(o developments.Observation) *string { return o.AssetOwnerName })
	dev.Area = firstNonEmpty(group, func(o developments.Observation) *string { return o.Area })
	dev.Postcode = firstNonEmpty(group, func(o developments.Observation) *string { return o.Postcode })
	dev.CompletionDate = firstNonEmpty(group, func(o developments.Observation) *string { return o.CompletionDate })
	dev.Description = firstNonEmpty(group, func(o developments.Observation) *string { return o.Description })
	dev.WebsiteURL = firstNonEmpty(group, func(o developments.Observation) *string { return o.WebsiteURL })

	// First observation whose unit count parses wins; unparsable values are
	// skipped, not treated as zero.
	for _, obs := range group {
		if obs.NumberOfUnits == nil {
			continue
		}
		if n, ok := developments.ParseUnits(*obs.NumberOfUnits); ok {
			units := n
			dev.NumberOfUnits = &units
			break
		}
	}

	// Order-preserving dedup union of provenance URLs.
	seen := make(map[string]bool)
	for _, obs := range group {
		src := obs.SourceURL
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		dev.SourceURLs = append(dev.SourceURLs, src)
	}

	return dev
}

// firstNonEmpty returns the trimmed value of the first observation in
// cluster order whose selected field is present and non-blank.
func firstNonEmpty(group []developments.Observation, get func(developments.Observation) *string) string {
	for _, obs := range group {
		if v := get(obs); v != nil {
			if trimmed := strings.TrimSpace(*v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
