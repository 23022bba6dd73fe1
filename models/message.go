package models

// Message is one (sender, message, timestamp) tuple recovered from a
// provider page. Instances are built once during an extraction pass and
// never mutated afterwards.
type Message struct {
	// Sender is the trimmed sender field. Never empty, never a header token.
	Sender string `json:"sender"`

	// Body is the trimmed, whitespace-collapsed message text.
	Body string `json:"message"`

	// ReceivedAt is an ISO-8601 UTC instant, parsed from the page where
	// possible and defaulted to the extraction time otherwise.
	ReceivedAt string `json:"received_at"`

	// RawHTML is the originating fragment (table row, container element,
	// or a short label for text-pattern matches), kept for auditing.
	RawHTML string `json:"raw_html,omitempty"`
}
