package extractor

import "testing"

func TestIsValidMessage(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		body   string
		want   bool
	}{
		{"real message", "Bank", "Your code is 1234", true},
		{"header sender", "From", "hello", false},
		{"header sender lowercase", "sender", "hello", false},
		{"header sender mixed case", "FiElD", "hello", false},
		{"header body", "Bank", "SMS", false},
		{"header body lowercase", "Bank", "description", false},
		{"empty sender", "", "x", false},
		{"empty body", "Bank", "", false},
		{"whitespace-only sender", "   ", "x", false},
		{"whitespace-only body", "Bank", " \t\n", false},
		{"single-char fields pass", "A", "B", true},
		{"header word inside longer text passes", "Bank", "SMS code: 1234", true},
		{"sender containing header token passes", "Fromagerie", "hello", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidMessage(tt.sender, tt.body); got != tt.want {
				t.Errorf("IsValidMessage(%q, %q) = %v, want %v", tt.sender, tt.body, got, tt.want)
			}
		})
	}
}
