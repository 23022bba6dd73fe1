package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/smsgrab/models"
)

// Health returns a handler for GET /api/v1/health.
//
// It is a pure liveness probe for monitoring: fixed status, current
// timestamp, no network access and no provider dependency.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(models.ISOMillis),
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Version:   "0.1.0",
		})
	}
}
