package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/internal/ratelimit"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/metrics"
	"go.uber.org/zap"
)

// ClientKey derives the rate-limit key for a request: the forwarded client
// IP when available, otherwise the literal "unknown" bucket. All clients
// behind a proxy that strips forwarding headers share that one counter,
// which is a deliberately conservative fallback.
func ClientKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// SubmissionLimitMiddleware enforces the fixed-window submission cap on the
// contact endpoint
func SubmissionLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)

		if !limiter.Allow(key) {
			logger.Warn("Rate limit exceeded", zap.String("client_key", key))
			metrics.RateLimitRejections.WithLabelValues("submission").Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
