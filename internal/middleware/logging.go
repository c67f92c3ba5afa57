package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/metrics"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// AccessLog logs one line per request and records the request metrics.
func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		statusLabel := strconv.Itoa(status)

		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, statusLabel).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method, statusLabel).Observe(latency.Seconds())

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		if errs := c.Errors.ByType(gin.ErrorTypeBind); len(errs) > 0 {
			if details, ok := errs.Last().Meta.(map[string]string); ok {
				event = event.Interface("validation", details)
			}
		}
		event.
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Msg("request")
	}
}
