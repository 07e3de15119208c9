package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS applies a permissive policy to paths under prefix and answers their preflight requests.
func CORS(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// CacheControl marks the response as publicly cacheable for maxAge seconds, CDN included.
func CacheControl(maxAge int) gin.HandlerFunc {
	cacheControl := fmt.Sprintf("public, max-age=%d, s-maxage=%d", maxAge, maxAge)
	cdnCacheControl := fmt.Sprintf("max-age=%d", maxAge)
	return func(c *gin.Context) {
		c.Header("Cache-Control", cacheControl)
		c.Header("CDN-Cache-Control", cdnCacheControl)
		c.Next()
	}
}

// NoStore withdraws the headers set by CacheControl so a failed response is never cached.
func NoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Writer.Header().Del("CDN-Cache-Control")
}
