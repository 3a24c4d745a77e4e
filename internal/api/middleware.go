package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// accessLog writes one structured line per request.
// Server errors log at error level with the recorded cause.
func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", RequestIDFrom(c),
		}

		switch {
		case status >= http.StatusInternalServerError:
			if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
				attrs = append(attrs, "error", errs.String())
			}
			logger.Error("request failed", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}

// rateLimit rejects requests once the shared token bucket is empty.
// onReject may be nil.
func rateLimit(limiter *rate.Limiter, onReject func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			if onReject != nil {
				onReject()
			}
			abortWithMessage(c, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		c.Next()
	}
}

// recovery converts handler panics into a 500 with the standard error body.
func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("handler panic",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", RequestIDFrom(c),
		)
		abortWithMessage(c, http.StatusInternalServerError, msgInternal)
	})
}
