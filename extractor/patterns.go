package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/smsgrab/models"
)

// KnownTemplate describes a recurring provider notification that keeps
// showing up on pages whose table markup is broken or absent. Sender is
// the provider name as it appears in the text; Warning is the fixed phrase
// the message body starts at.
type KnownTemplate struct {
	Sender  string
	Warning string
}

// KnownLiteral is a full message text observed verbatim on provider pages.
type KnownLiteral struct {
	Sender string
	Text   string
}

// Defaults cover the one notification family seen in the wild so far.
// Callers with different providers swap these via NewWithPatterns.
var (
	defaultTemplates = []KnownTemplate{
		{Sender: "PayPal", Warning: "Don't share your code"},
	}
	defaultLiterals = []KnownLiteral{
		{
			Sender: "PayPal",
			Text:   "Your PayPal password has been reset. If this wasn't you, log in and review your account activity.",
		},
	}
)

// From/Message pairs written as plain text, e.g. "From: Acme ... Message:
// Your code is 5521". Case-insensitive, dot matches newline, message ends
// at the next line break.
var reFromMessage = regexp.MustCompile(`(?is)from:\s*(.+?)\s*message:\s*(.+?)\s*(?:\r?\n|$)`)

// extractContainers is the third strategy: scan every div/section/article
// for a known template's provider name followed by its warning phrase. The
// message is the text from the warning phrase to the next line break or
// pipe, accepted when longer than 10 characters.
func (e *Extractor) extractContainers(doc *goquery.Document) []models.Message {
	var out []models.Message

	doc.Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		for _, tpl := range e.templates {
			idx := strings.Index(text, tpl.Sender)
			if idx < 0 {
				continue
			}
			warnIdx := strings.Index(text[idx:], tpl.Warning)
			if warnIdx < 0 {
				continue
			}

			rest := text[idx+warnIdx:]
			if end := strings.IndexAny(rest, "\n\r|"); end >= 0 {
				rest = rest[:end]
			}
			body := strings.TrimSpace(rest)
			if len(body) <= 10 {
				continue
			}

			raw, _ := goquery.OuterHtml(s)
			out = append(out, models.Message{
				Sender:     tpl.Sender,
				Body:       body,
				ReceivedAt: ParseTimestamp(""),
				RawHTML:    raw,
			})
		}
	})

	return out
}

// extractTextPatterns is the fourth strategy: regex and literal matching
// over the visible document text (raw HTML when no text could be
// extracted). All sub-pattern matches are unioned.
func (e *Extractor) extractTextPatterns(rawHTML string) []models.Message {
	text := visibleText(rawHTML)
	if strings.TrimSpace(text) == "" {
		text = rawHTML
	}

	var out []models.Message

	for _, lit := range e.literals {
		if strings.Contains(text, lit.Text) {
			out = append(out, models.Message{
				Sender:     lit.Sender,
				Body:       lit.Text,
				ReceivedAt: ParseTimestamp(""),
				RawHTML:    "text-pattern: known literal (" + lit.Sender + ")",
			})
		}
	}

	for i, re := range e.templateRegexps {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			body := strings.TrimSpace(m[1])
			if len(body) <= 10 {
				continue
			}
			out = append(out, models.Message{
				Sender:     e.templates[i].Sender,
				Body:       collapseWhitespace(body),
				ReceivedAt: ParseTimestamp(""),
				RawHTML:    "text-pattern: provider template (" + e.templates[i].Sender + ")",
			})
		}
	}

	for _, m := range reFromMessage.FindAllStringSubmatch(text, -1) {
		sender := strings.TrimSpace(m[1])
		body := collapseWhitespace(m[2])
		if !IsValidMessage(sender, body) {
			continue
		}
		out = append(out, models.Message{
			Sender:     sender,
			Body:       body,
			ReceivedAt: ParseTimestamp(""),
			RawHTML:    "text-pattern: from/message pair",
		})
	}

	return out
}

// templateRegexp matches a template's provider name followed eventually by
// its warning phrase, capturing everything after the phrase up to the next
// pipe character.
func templateRegexp(tpl KnownTemplate) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(tpl.Sender) + `[\s\S]*?` + regexp.QuoteMeta(tpl.Warning) + `([^|]*)`)
}
