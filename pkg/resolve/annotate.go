package resolve

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
)

var alnumSpaceRe = regexp.MustCompile(`[^a-z0-9\s]`)

// MarkExisting annotates each resolved development as new or already known,
// given the directory's lowercased name → slug index. It is a pure function:
// the input slice is left untouched and annotated copies are returned, so
// the check stays side-effect-free and independently testable.
//
// Matching layers, first hit wins:
//  1. exact slug match against the stored slugs
//  2. alphanumeric-normalized substring containment against stored names,
//     with both sides at least 5 characters to avoid short-name collisions
func MarkExisting(devs []developments.Development, existing map[string]string) []developments.Development {
	existingSlugs := make(map[string]bool, len(existing))
	names := make([]string, 0, len(existing))
	for name, slug := range existing {
		existingSlugs[slug] = true
		names = append(names, name)
	}
	// Stable iteration order keeps annotations reproducible across runs.
	sort.Strings(names)

	out := make([]developments.Development, len(devs))
	for i, dev := range devs {
		annotated := dev
		annotated.Notes = append([]string(nil), dev.Notes...)

		if existingSlugs[dev.Slug] {
			annotated.IsNew = false
			annotated.Notes = append(annotated.Notes, fmt.Sprintf("Slug %q already in database", dev.Slug))
			out[i] = annotated
			continue
		}

		normalized := alnumSpaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(dev.Name)), "")
		annotated.IsNew = true
		for _, dbName := range names {
			dbSlug := existing[dbName]
			dbNormalized := alnumSpaceRe.ReplaceAllString(dbName, "")
			if len(normalized) < 5 || len(dbNormalized) < 5 {
				continue
			}
			if strings.Contains(dbNormalized, normalized) || strings.Contains(normalized, dbNormalized) {
				annotated.IsNew = false
				annotated.Notes = append(annotated.Notes, fmt.Sprintf("Fuzzy match with existing: %q (%s)", dbName, dbSlug))
				break
			}
		}

		out[i] = annotated
	}
	return out
}
