package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/use-agent/smsgrab/models"
)

// The provider pages write timestamps in a handful of layouts, tried in
// this order. Dot and slash dates are day-first; that matters, because a
// generic parser would read 03/04/2024 as March 4th.
var timestampPatterns = []struct {
	re       *regexp.Regexp
	assemble func(m []string) (string, string) // (value, layout)
}{
	{
		re: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2}):(\d{2})`),
		assemble: func(m []string) (string, string) {
			return fmt.Sprintf("%s-%s-%s %s:%s:%s", m[1], m[2], m[3], m[4], m[5], m[6]), "2006-01-02 15:04:05"
		},
	},
	{
		re: regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})(?:\s+(\d{1,2}):(\d{2}))?`),
		assemble: func(m []string) (string, string) {
			if m[4] == "" {
				return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), "2006-1-2"
			}
			return fmt.Sprintf("%s-%s-%s %s:%s", m[3], m[2], m[1], m[4], m[5]), "2006-1-2 15:4"
		},
	},
	{
		re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{2}))?`),
		assemble: func(m []string) (string, string) {
			if m[4] == "" {
				return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), "2006-1-2"
			}
			return fmt.Sprintf("%s-%s-%s %s:%s", m[3], m[2], m[1], m[4], m[5]), "2006-1-2 15:4"
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{1,2}):(\d{2}):(\d{2})\b`),
		assemble: func(m []string) (string, string) {
			today := time.Now().UTC().Format("2006-01-02")
			return fmt.Sprintf("%s %s:%s:%s", today, m[1], m[2], m[3]), "2006-01-02 15:4:5"
		},
	},
	{
		re: regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`),
		assemble: func(m []string) (string, string) {
			today := time.Now().UTC().Format("2006-01-02")
			return fmt.Sprintf("%s %s:%s", today, m[1], m[2]), "2006-01-02 15:4"
		},
	},
}

// ParseTimestamp converts heterogeneous page timestamp text into an
// ISO-8601 UTC instant. It never fails: unparseable input falls through a
// free-form parse and finally to the current time.
func ParseTimestamp(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nowISO()
	}

	for _, p := range timestampPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, layout := p.assemble(m)
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(models.ISOMillis)
		}
		break
	}

	// Last resort: hand the raw text to a free-form parser.
	if t, err := dateparse.ParseAny(text); err == nil {
		return t.UTC().Format(models.ISOMillis)
	}

	return nowISO()
}

func nowISO() string {
	return time.Now().UTC().Format(models.ISOMillis)
}
