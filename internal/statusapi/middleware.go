package statusapi

import "github.com/gin-gonic/gin"

// SecurityHeaders adds standard hardening headers to every response.
// Adapted from the teacher's internal/radio.SecurityHeadersMiddleware; the
// matching AuthRequired middleware in that file is not carried over since
// this endpoint is read-only and unauthenticated (spec.md's Non-goals
// exclude any control-plane write surface).
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
