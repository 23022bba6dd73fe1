package models

// ScrapeResponse is the uniform result envelope for one scrape invocation.
// Every failure mode is folded into this shape; the scraper never lets an
// error or panic escape past it.
type ScrapeResponse struct {
	// Success indicates whether the scrape completed. A page with zero
	// messages is still a success ("service accessible, nothing waiting").
	Success bool `json:"success"`

	// Messages lists the extracted messages in discovery order.
	// Empty on failure or when no strategy matched.
	Messages []Message `json:"messages"`

	// Error is populated only when Success is false.
	Error string `json:"error,omitempty"`

	// LastScrapedAt is the ISO-8601 instant the result was produced.
	LastScrapedAt string `json:"last_scraped_at"`

	// DebugInfo carries diagnostics. It never affects control flow; callers
	// may use it to shape retry policy.
	DebugInfo DebugInfo `json:"debug_info"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`
}

// DebugInfo is diagnostic metadata about a scrape attempt.
type DebugInfo struct {
	// HTTPStatus is the upstream status code, when a response was received.
	HTTPStatus int `json:"http_status,omitempty"`

	// ResponseTimeMs is the fetch duration in milliseconds.
	ResponseTimeMs int64 `json:"response_time_ms,omitempty"`

	// ContentLength is the fetched body length in bytes.
	ContentLength int `json:"content_length,omitempty"`

	// ServiceAccessible is false when the fetch itself failed (network
	// error, timeout, non-2xx). True once a body was obtained, even if
	// parsing later failed.
	ServiceAccessible bool `json:"service_accessible"`

	// FetchMethod names the fetch path used ("http").
	FetchMethod string `json:"fetch_method,omitempty"`
}

// APIErrorResponse is the envelope for requests rejected before a scrape
// runs (auth, rate limit, malformed input, disabled store).
type APIErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health. The probe performs
// no network access; it exists for monitoring only.
type HealthResponse struct {
	Status    string `json:"status"` // always "healthy"
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
}

// MessagesResponse is the response for GET /api/v1/messages.
type MessagesResponse struct {
	Success  bool            `json:"success"`
	Phone    string          `json:"phone"`
	Messages []StoredMessage `json:"messages"`
	Error    *ErrorDetail    `json:"error,omitempty"`
}

// StoredMessage is a persisted message row.
type StoredMessage struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Sender      string `json:"sender"`
	Body        string `json:"message"`
	ReceivedAt  string `json:"received_at"`
	CreatedAt   string `json:"created_at"`
}
