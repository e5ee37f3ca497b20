package developments

import (
	"net/url"
	"strconv"
	"strings"
)

// NormalizePostcode prepares a postcode for comparison: uppercased with all
// whitespace removed. Empty input normalizes to "".
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
}

// statusSynonyms maps lowercased free-text status wording onto the fixed
// vocabulary. Unknown wording passes through unchanged.
var statusSynonyms = map[string]Status{
	"in planning":        StatusInPlanning,
	"planned":            StatusInPlanning,
	"planning":           StatusInPlanning,
	"under construction": StatusUnderConstruction,
	"construction":       StatusUnderConstruction,
	"building":           StatusUnderConstruction,
	"operational":        StatusOperational,
	"open":               StatusOperational,
	"letting":            StatusOperational,
	"now letting":        StatusOperational,
	"complete":           StatusOperational,
	"completed":          StatusOperational,
}

// NormalizeStatus maps free-text status wording onto the fixed vocabulary
// via the synonym table. Wording outside the table is returned as-is so the
// caller can decide whether to drop it.
func NormalizeStatus(status string) string {
	if s, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(status))]; ok {
		return s.String()
	}
	return status
}

// ParseUnits coerces a raw unit-count string to a non-negative integer.
// Unparsable or negative input returns (0, false).
func ParseUnits(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Domain extracts the bare lowercased host from a URL, with any leading
// "www." removed. Scheme-less input like "grainger.co.uk/about" is
// treated as https. Unparsable input returns "".
func Domain(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
