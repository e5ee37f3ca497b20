package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// parseObject parses a model response as a JSON object, tolerating the
// formats models actually emit: bare JSON, JSON wrapped in a markdown
// code fence, and JSON surrounded by prose.
func parseObject(text string) (map[string]any, bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed, true
	}

	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil {
			return parsed, true
		}
	}

	return nil, false
}
