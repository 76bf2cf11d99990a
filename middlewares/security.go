package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders marks every answer as JSON-only data that must not be
// framed or stored. The route patterns in cacheable answer with data that
// does not change between requests, so GETs on them may be kept for maxAge.
func SecurityHeaders(maxAge time.Duration, cacheable ...string) gin.HandlerFunc {
	cached := make(map[string]bool, len(cacheable))
	for _, route := range cacheable {
		cached[route] = true
	}
	privateCache := fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds()))

	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Referrer-Policy", "no-referrer")
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		if c.Request.Method == http.MethodGet && cached[c.FullPath()] {
			c.Header("Cache-Control", privateCache)
		} else {
			c.Header("Cache-Control", "no-store")
			c.Header("Pragma", "no-cache")
		}

		c.Next()
	}
}
