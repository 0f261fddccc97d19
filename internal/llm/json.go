package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls the first JSON object out of free-form model text. It
// prefers a fenced ```json block, then falls back to the outermost brace
// pair. The returned bytes are validated with json.Valid; ok is false when
// no parseable object is present.
func ExtractJSON(text string) (raw json.RawMessage, ok bool) {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		if candidate := []byte(strings.TrimSpace(m[1])); json.Valid(candidate) {
			return candidate, true
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if candidate := []byte(text[start : end+1]); json.Valid(candidate) {
			return candidate, true
		}
	}
	return nil, false
}
