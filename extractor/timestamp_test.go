package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/use-agent/smsgrab/models"
)

func TestParseTimestamp_KnownLayouts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso datetime", "2024-03-15 14:30:00", "2024-03-15T14:30:00.000Z"},
		{"iso datetime with T", "2024-03-15T14:30:00", "2024-03-15T14:30:00.000Z"},
		{"dot date day-first", "15.03.2024 14:30", "2024-03-15T14:30:00.000Z"},
		{"slash date day-first", "15/03/2024 14:30", "2024-03-15T14:30:00.000Z"},
		{"dot date without time", "03.04.2024", "2024-04-03T00:00:00.000Z"},
		{"slash date without time", "03/04/2024", "2024-04-03T00:00:00.000Z"},
		{"surrounding text", "Added: 15.03.2024 14:30 (CET)", "2024-03-15T14:30:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.in); got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_BareTime(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")

	got := ParseTimestamp("14:30")
	if !strings.HasPrefix(got, today) || !strings.Contains(got, "T14:30:00") {
		t.Errorf("ParseTimestamp(\"14:30\") = %q, want today's date with 14:30", got)
	}

	got = ParseTimestamp("14:30:45")
	if !strings.HasPrefix(got, today) || !strings.Contains(got, "T14:30:45") {
		t.Errorf("ParseTimestamp(\"14:30:45\") = %q, want today's date with 14:30:45", got)
	}
}

func TestParseTimestamp_NeverFails(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "99.99.9999 99:99", "|||"} {
		got := ParseTimestamp(in)
		parsed, err := time.Parse(models.ISOMillis, got)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) = %q, not a valid instant: %v", in, got, err)
		}
		if d := time.Since(parsed); d < -5*time.Second || d > 5*time.Second {
			t.Errorf("ParseTimestamp(%q) = %q, expected a current-instant fallback", in, got)
		}
	}
}

func TestParseTimestamp_FreeFormFallback(t *testing.T) {
	// Not one of the five layouts, but parseable by the free-form parser.
	got := ParseTimestamp("May 8, 2009")
	if got != "2009-05-08T00:00:00.000Z" {
		t.Errorf("ParseTimestamp free-form = %q, want 2009-05-08T00:00:00.000Z", got)
	}
}
