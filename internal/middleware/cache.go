package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as private and uncacheable. Logbook data is
// per-teacher and must not be kept by shared caches.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
