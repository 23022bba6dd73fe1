package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the provider page to scrape. Required. Must match the
	// configured provider shape (host, path segment, phone + key params).
	URL string `json:"url" binding:"required,url"`

	// MaxAge, in milliseconds, allows a cached response no older than this
	// to be returned instead of re-fetching. 0 (default) disables caching.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`

	// Persist stores the returned messages in the message store when one
	// is configured. A store failure never alters the scrape response.
	Persist bool `json:"persist,omitempty"`
}
