package scraper

import (
	"net/url"
	"strings"

	"github.com/use-agent/smsgrab/config"
)

// Validator checks that a target URL matches the configured provider
// shape. It is a pure predicate with no side effects and is the first gate
// of every scrape: nothing is fetched for a URL it rejects.
type Validator struct {
	cfg config.ProviderConfig
}

// NewValidator creates a Validator for the given provider shape.
func NewValidator(cfg config.ProviderConfig) *Validator {
	return &Validator{cfg: cfg}
}

// IsValidURL reports whether raw parses and carries the expected hostname,
// the expected path segment, and both required query parameters. Parameter
// values are never format-checked, only presence.
func (v *Validator) IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Hostname(), v.cfg.Host) {
		return false
	}
	if !strings.Contains(u.Path, v.cfg.PathSegment) {
		return false
	}
	q := u.Query()
	return q.Has(v.cfg.PhoneParam) && q.Has(v.cfg.KeyParam)
}

// PhoneNumber extracts the phone query parameter from a URL. Returns ""
// when the URL does not parse or the parameter is absent.
func (v *Validator) PhoneNumber(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get(v.cfg.PhoneParam)
}
