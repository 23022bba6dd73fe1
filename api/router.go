package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/smsgrab/api/handler"
	"github.com/use-agent/smsgrab/api/middleware"
	"github.com/use-agent/smsgrab/cache"
	"github.com/use-agent/smsgrab/config"
	"github.com/use-agent/smsgrab/scraper"
	"github.com/use-agent/smsgrab/store"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes
// always work. st may be nil when persistence is disabled.
func NewRouter(sc *scraper.Scraper, cc *cache.Cache, st *store.Store, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/scrape", handler.Scrape(sc, cc, st))
	protected.GET("/messages", handler.Messages(st))

	return r
}
