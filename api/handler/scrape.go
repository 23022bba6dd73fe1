package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/smsgrab/cache"
	"github.com/use-agent/smsgrab/models"
	"github.com/use-agent/smsgrab/scraper"
	"github.com/use-agent/smsgrab/store"
)

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Cache lookup when the client allows a max_age.
//  3. Scraper.Scrape — the result envelope is returned as-is; a failed
//     scrape is still HTTP 200, the envelope carries the failure.
//  4. Optional persistence of extracted messages. Store errors are logged
//     and never touch the response already built in step 3.
func Scrape(sc *scraper.Scraper, cc *cache.Cache, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.APIErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cache.Key(req.URL), req.MaxAge); hit {
				cached.CacheStatus = "hit"
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp := sc.Scrape(c.Request.Context(), req.URL)

		if req.Persist && st != nil && resp.Success && len(resp.Messages) > 0 {
			phone := sc.Validator().PhoneNumber(req.URL)
			inserted, err := st.SaveMessages(c.Request.Context(), phone, resp.Messages)
			if err != nil {
				slog.Error("message persistence failed", "phone", phone, "error", err)
			} else {
				slog.Info("messages persisted", "phone", phone, "inserted", inserted)
			}
		}

		if cc != nil && req.MaxAge > 0 && resp.Success {
			cc.Set(cache.Key(req.URL), resp)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, resp)
	}
}
