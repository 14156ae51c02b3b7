package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nurture-backend/internal/shared/metrics"
	"nurture-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		durationMs := float64(latency.Microseconds()) / 1000.0
		metrics.ObserveRequestDurationMs(durationMs)

		userID, _ := c.Get(userIDKey)
		assessmentID, _ := c.Get("assessmentId")
		postID, _ := c.Get("postId")
		gameSessionID, _ := c.Get("gameSessionId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":      RequestIDFromContext(c),
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"route":           c.FullPath(),
			"status":          c.Writer.Status(),
			"duration_ms":     durationMs,
			"user_id":         userID,
			"assessment_id":   assessmentID,
			"post_id":         postID,
			"game_session_id": gameSessionID,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
