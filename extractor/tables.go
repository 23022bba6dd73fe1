package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/smsgrab/models"
)

// The provider's primary layout addresses each cell by a data-label
// attribute, literal multi-space padding included. Matchers are compiled
// once; the labels are exactly what the source pages emit.
var (
	selTbodyRows   = cascadia.MustCompile("table tbody tr")
	selFromCell    = cascadia.MustCompile(`td[data-label="From   :"]`)
	selMessageCell = cascadia.MustCompile(`td[data-label="Message   :"]`)
	selAddedCell   = cascadia.MustCompile(`td[data-label="Added   :"]`)
)

// extractLabeledRows is the first strategy: rows inside <table><tbody>
// whose three cells carry the From/Message/Added labels. The message text
// is whitespace-collapsed; the Added cell feeds the timestamp parser.
func extractLabeledRows(doc *goquery.Document) []models.Message {
	var out []models.Message

	doc.FindMatcher(selTbodyRows).Each(func(_ int, row *goquery.Selection) {
		from := row.FindMatcher(selFromCell)
		body := row.FindMatcher(selMessageCell)
		added := row.FindMatcher(selAddedCell)
		if from.Length() == 0 || body.Length() == 0 || added.Length() == 0 {
			return
		}

		sender := strings.TrimSpace(from.Text())
		text := collapseWhitespace(body.Text())
		if !IsValidMessage(sender, text) {
			return
		}

		raw, _ := goquery.OuterHtml(row)
		out = append(out, models.Message{
			Sender:     sender,
			Body:       text,
			ReceivedAt: ParseTimestamp(added.Text()),
			RawHTML:    raw,
		})
	})

	return out
}

// extractGenericTables is the second strategy: every table in the
// document, every row but the first of each table (always assumed to be a
// header). Candidates accumulate across all tables; the strategy is
// accepted as a whole when anything survived the filter.
func extractGenericTables(doc *goquery.Document) []models.Message {
	var out []models.Message

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}

			cells := row.Find("td")
			var sender, body, tsText string
			switch {
			case cells.Length() >= 3:
				sender = strings.TrimSpace(cells.Eq(0).Text())
				body = collapseWhitespace(cells.Eq(1).Text())
				tsText = strings.TrimSpace(cells.Eq(2).Text())
			case cells.Length() == 2:
				sender = strings.TrimSpace(cells.Eq(0).Text())
				body = collapseWhitespace(cells.Eq(1).Text())
			case cells.Length() == 1:
				sender, body = splitSingleCell(cells.Eq(0).Text())
				if sender == "" {
					return
				}
			default:
				return
			}

			if !IsValidMessage(sender, body) {
				return
			}

			raw, _ := goquery.OuterHtml(row)
			out = append(out, models.Message{
				Sender:     sender,
				Body:       body,
				ReceivedAt: ParseTimestamp(tsText),
				RawHTML:    raw,
			})
		})
	})

	return out
}

// splitSingleCell splits a lone cell's text on the first delimiter that
// yields at least two parts. The first part becomes the sender, the rest
// rejoin with spaces as the message.
func splitSingleCell(text string) (sender, body string) {
	text = strings.TrimSpace(text)
	for _, delim := range []string{"|", "-", ":"} {
		parts := strings.Split(text, delim)
		if len(parts) < 2 {
			continue
		}
		sender = strings.TrimSpace(parts[0])
		rest := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				rest = append(rest, trimmed)
			}
		}
		return sender, strings.Join(rest, " ")
	}
	return "", ""
}
