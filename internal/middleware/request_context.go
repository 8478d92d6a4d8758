package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
)

// RequestContext assigns each request a UUID, exposes it in the
// X-Request-ID response header, and logs the request with parsed
// user-agent details and latency
func RequestContext(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		ua := user_agent.New(c.Request.UserAgent())
		browser, browserVersion := ua.Browser()

		logger.WithFields(logrus.Fields{
			"request_id":      requestID,
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"query":           c.Request.URL.RawQuery,
			"ip":              c.ClientIP(),
			"browser":         browser,
			"browser_version": browserVersion,
			"os":              ua.OS(),
			"mobile":          ua.Mobile(),
			"bot":             ua.Bot(),
		}).Info("Incoming request")

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("Request completed")
	}
}
