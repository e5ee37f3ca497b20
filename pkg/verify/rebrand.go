package verify

import (
	"fmt"
	"regexp"
	"strings"
)

// Phrases in page content that signal the development has been renamed.
var rebrandKeywords = []string{
	"formerly known as", "previously called", "now called",
	"rebranded to", "rebranded as", "new name",
}

// Generic code-name prefixes ("Plot M0121") that should not trigger the
// name-not-found check.
var genericNamePrefixes = map[string]bool{
	"plot":   true,
	"phase":  true,
	"block":  true,
	"unit":   true,
	"site":   true,
	"parcel": true,
	"lot":    true,
}

var punctuationRe = regexp.MustCompile(`[^\w\s]`)

// DetectRebranding checks whether the crawled page suggests the development
// has been renamed. Two heuristics: explicit rebrand phrasing anywhere in
// the content, and — on the listing's own dedicated page only — the stored
// name appearing nowhere in the title or content. Returns a human-readable
// note alongside the flag.
func DetectRebranding(title, content, storedName string, dedicatedPage bool) (bool, string) {
	if title == "" || storedName == "" {
		return false, ""
	}

	storedLower := strings.ToLower(strings.TrimSpace(storedName))
	titleLower := strings.ToLower(strings.TrimSpace(title))

	contentLower := truncate(strings.ToLower(content), 5000)
	for _, keyword := range rebrandKeywords {
		if strings.Contains(contentLower, keyword) {
			return true, fmt.Sprintf("Page contains %q — possible rebrand", keyword)
		}
	}

	if !dedicatedPage {
		return false, ""
	}

	// Match on the first word of the name before any comma, punctuation
	// stripped ("Trader's Wharf, Leeds" matches on "traders").
	nameBeforeComma := strings.TrimSpace(strings.SplitN(storedLower, ",", 2)[0])
	nameParts := strings.Fields(punctuationRe.ReplaceAllString(nameBeforeComma, ""))
	if len(nameParts) == 0 {
		return false, ""
	}

	mainName := nameParts[0]
	if genericNamePrefixes[mainName] {
		return false, ""
	}

	normTitle := punctuationRe.ReplaceAllString(titleLower, "")
	normContent := punctuationRe.ReplaceAllString(truncate(contentLower, 3000), "")

	if len(mainName) > 3 && !strings.Contains(normTitle, mainName) && !strings.Contains(normContent, mainName) {
		return true, fmt.Sprintf("Stored name %q not found in page content — possible rebrand", storedName)
	}

	return false, ""
}
