// Package extractor turns loosely structured provider HTML into message
// tuples. Four strategies run in a fixed priority order; the first one
// that yields anything wins. Extraction is pure: the same HTML always
// produces the same messages.
package extractor

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/smsgrab/models"
)

// Extractor applies the ordered extraction strategies. Safe for concurrent
// use; it holds only immutable pattern tables.
type Extractor struct {
	templates       []KnownTemplate
	literals        []KnownLiteral
	templateRegexps []*regexp.Regexp
}

// New creates an Extractor with the default known-pattern tables.
func New() *Extractor {
	return NewWithPatterns(defaultTemplates, defaultLiterals)
}

// NewWithPatterns creates an Extractor with caller-supplied template and
// literal tables, for providers whose recovery patterns differ from the
// defaults.
func NewWithPatterns(templates []KnownTemplate, literals []KnownLiteral) *Extractor {
	regexps := make([]*regexp.Regexp, len(templates))
	for i, tpl := range templates {
		regexps[i] = templateRegexp(tpl)
	}
	return &Extractor{
		templates:       templates,
		literals:        literals,
		templateRegexps: regexps,
	}
}

// Extract parses rawHTML and runs the strategies in order, returning the
// first non-empty batch. An accessible page with no recognizable messages
// is not an error: the result is an empty slice and a nil error. Panics
// inside any strategy are recovered here and returned as the error; they
// never reach the caller.
func (e *Extractor) Extract(rawHTML string) (msgs []models.Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			msgs = nil
			err = models.NewScrapeError(models.ErrCodeParseFailed,
				fmt.Sprintf("extraction panicked: %v", r), nil)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeParseFailed, "parse document", err)
	}

	strategies := []struct {
		name string
		run  func() []models.Message
	}{
		{"labeled-rows", func() []models.Message { return extractLabeledRows(doc) }},
		{"generic-tables", func() []models.Message { return extractGenericTables(doc) }},
		{"containers", func() []models.Message { return e.extractContainers(doc) }},
		{"text-patterns", func() []models.Message { return e.extractTextPatterns(rawHTML) }},
	}

	for _, strat := range strategies {
		if found := strat.run(); len(found) > 0 {
			slog.Debug("extraction strategy matched",
				"strategy", strat.name,
				"messages", len(found),
			)
			return found, nil
		}
	}

	return []models.Message{}, nil
}
