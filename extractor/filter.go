package extractor

import "strings"

// Column labels that show up as cell values when a header row is
// misidentified as data. Matched exactly (case-insensitive) after trimming.
var (
	headerSenders = map[string]struct{}{
		"from":   {},
		"sender": {},
		"field":  {},
	}
	headerBodies = map[string]struct{}{
		"message":     {},
		"sms":         {},
		"content":     {},
		"description": {},
	}
)

// IsValidMessage reports whether a candidate (sender, message) pair looks
// like real data rather than a header row or placeholder cell. This is an
// exact-match blocklist, not a length or character-class check: any
// non-empty, non-header pair passes.
func IsValidMessage(sender, body string) bool {
	sender = strings.TrimSpace(sender)
	body = strings.TrimSpace(body)
	if sender == "" || body == "" {
		return false
	}
	if _, ok := headerSenders[strings.ToLower(sender)]; ok {
		return false
	}
	if _, ok := headerBodies[strings.ToLower(body)]; ok {
		return false
	}
	return true
}
