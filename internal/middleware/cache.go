package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// NoStore marks API responses as uncacheable; they depend on the caller's department.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// PrivateCache lets the browser, but no shared cache, keep a response for maxAgeSeconds.
func PrivateCache(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
