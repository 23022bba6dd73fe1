package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Fetcher   FetcherConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Store     StoreConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ProviderConfig describes the expected shape of scrapeable URLs. The
// validator rejects anything that does not match before a single byte is
// fetched.
type ProviderConfig struct {
	// Host is the exact hostname the target URL must carry.
	Host string // default: "receive-sms-online.info"

	// PathSegment must appear somewhere in the URL path.
	PathSegment string // default: "/sms"

	// PhoneParam is the query parameter identifying the number.
	PhoneParam string // default: "phone"

	// KeyParam is the access-key query parameter. Presence only is
	// checked, never the value.
	KeyParam string // default: "key"
}

// FetcherConfig controls the outbound HTTP fetch.
type FetcherConfig struct {
	// Timeout bounds the whole request. On expiry the request is
	// abandoned; no partial body is processed.
	Timeout time.Duration // default: 15s

	// Proxy is an optional proxy URL for outbound requests.
	Proxy string

	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64 // default: 10 MB
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the scrape response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// StoreConfig controls the optional sqlite message store.
type StoreConfig struct {
	// Path is the sqlite database file. Empty disables persistence.
	Path string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SMSGRAB_HOST", "0.0.0.0"),
			Port: envIntOr("SMSGRAB_PORT", 8080),
			Mode: envOr("SMSGRAB_MODE", "release"),
		},
		Provider: ProviderConfig{
			Host:        envOr("SMSGRAB_PROVIDER_HOST", "receive-sms-online.info"),
			PathSegment: envOr("SMSGRAB_PROVIDER_PATH", "/sms"),
			PhoneParam:  envOr("SMSGRAB_PROVIDER_PHONE_PARAM", "phone"),
			KeyParam:    envOr("SMSGRAB_PROVIDER_KEY_PARAM", "key"),
		},
		Fetcher: FetcherConfig{
			Timeout:      envDurationOr("SMSGRAB_FETCH_TIMEOUT", 15*time.Second),
			Proxy:        os.Getenv("SMSGRAB_PROXY"),
			MaxBodyBytes: int64(envIntOr("SMSGRAB_MAX_BODY_BYTES", 10<<20)),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SMSGRAB_AUTH_ENABLED", true),
			APIKeys: envSliceOr("SMSGRAB_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SMSGRAB_RATE_RPS", 5.0),
			Burst:             envIntOr("SMSGRAB_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SMSGRAB_CACHE_MAX_ENTRIES", 1000),
		},
		Store: StoreConfig{
			Path: os.Getenv("SMSGRAB_STORE_PATH"),
		},
		Log: LogConfig{
			Level:  envOr("SMSGRAB_LOG_LEVEL", "info"),
			Format: envOr("SMSGRAB_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
