package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// collapseWhitespace trims the text and replaces every run of whitespace,
// newlines included, with a single space.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// visibleText tokenizes raw HTML and returns the text content with
// <script>, <style> and <noscript> bodies stripped. Text nodes are joined
// with newlines so line-oriented patterns still see element boundaries.
// Returns "" when the input contains no text at all.
func visibleText(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var buf strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "script", "style", "noscript":
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte('\n')
				}
			}
		}
	}
}
