package developments

import (
	"regexp"
	"strings"
)

var (
	slugStripRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`-+`)
)

// Slug canonicalizes a development name into a lowercase, hyphen-delimited
// identifier. It is total and idempotent but deliberately not injective:
// near-duplicate names ("The Quarters" / "the-quarters") collapse to the
// same slug, which the resolver exploits for grouping.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
